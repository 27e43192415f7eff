// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages contract storage.
// It follows the flow as bellow:
//
//	         o
//	         |
//	[ revertable state ]
//	         |
//	  [ stacked map ] -> [ journal ] -> [ playback(staging) ] -> [ kv bulk ]
//	         |
//	   [ lru cache ]
//	         |
//	    [ kv store ]
//
// Every storage slot is addressed by (contract address, slot key) and holds an rlp encoded value.
package state
