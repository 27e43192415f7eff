// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// create a table for contract events
const eventTableSchema = `
create table if not exists event (
	seq integer primary key,
	opNumber integer not null,
	eventIndex integer not null,
	time integer not null,
	name text not null,
	address blob(20) not null,
	account blob(20),
	counterparty blob(20),
	token blob(20),
	amount blob(32),
	duration integer,
	flag integer
);

CREATE INDEX if not exists timeIndex on event(time);
CREATE INDEX if not exists nameIndex on event(name);
CREATE INDEX if not exists accountIndex on event(account);
CREATE INDEX if not exists tokenIndex on event(token);
`
