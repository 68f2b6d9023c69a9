// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"github.com/bitmark-inc/witnessd/fault"
	"github.com/bitmark-inc/witnessd/storage"
)

func contentKey(id uint64) []byte {
	return storage.NewKey().Uint64(id).Bytes()
}

func partyPrefix(appID uint64, party string) []byte {
	return storage.NewKey().Uint64(appID).Name(party).Bytes()
}

func partyKey(appID uint64, party string, sequence uint64) []byte {
	return storage.NewKey().Uint64(appID).Name(party).Uint64(sequence).Bytes()
}

// one operation gives all its records the same sender sequence
func senderKey(appID uint64, sender string, sequence uint64, id uint64) []byte {
	return storage.NewKey().Uint64(appID).Name(sender).Uint64(sequence).Uint64(id).Bytes()
}

// LastSenderSequence - the highest sender side sequence recorded for
// (app, sender), zero if none
func (l *Ledger) LastSenderSequence(appID uint64, sender string) uint64 {
	return l.lastSequence(l.pool.ContentsBySender, appID, sender)
}

// LastRecipientSequence - the highest recipient side sequence
// recorded for (app, recipient), zero if none
func (l *Ledger) LastRecipientSequence(appID uint64, recipient string) uint64 {
	return l.lastSequence(l.pool.ContentsByRecipient, appID, recipient)
}

func (l *Ledger) lastSequence(pool *storage.PoolHandle, appID uint64, party string) uint64 {
	e, ok := l.trx.Last(pool, partyPrefix(appID, party))
	if !ok {
		return 0
	}
	r := storage.ReadKey(e.Key)
	r.Uint64()
	r.Name()
	return r.Uint64()
}

// PutContent - assign an id and store the record with both indexes
func (l *Ledger) PutContent(c *Content) {
	c.ID = l.nextID("content")
	l.put(l.pool.Contents, contentKey(c.ID), c)
	l.trx.PutN(l.pool.ContentsBySender, senderKey(c.AppID, c.Sender, c.SenderSequence, c.ID), c.ID)
	l.trx.PutN(l.pool.ContentsByRecipient, partyKey(c.AppID, c.Recipient, c.RecipientSequence), c.ID)
}

// GetContent - a record by id
func (l *Ledger) GetContent(id uint64) (*Content, bool) {
	c := &Content{}
	if !l.get(l.pool.Contents, contentKey(id), c) {
		return nil, false
	}
	return c, true
}

// ContentsSent - the records sent by sender for an application, in
// sequence order
func (l *Ledger) ContentsSent(appID uint64, sender string) []*Content {
	return l.contents(l.pool.ContentsBySender, appID, sender)
}

// ContentsReceived - the records received by recipient for an
// application, in sequence order
func (l *Ledger) ContentsReceived(appID uint64, recipient string) []*Content {
	return l.contents(l.pool.ContentsByRecipient, appID, recipient)
}

func (l *Ledger) contents(pool *storage.PoolHandle, appID uint64, party string) []*Content {
	elements := l.trx.Range(pool, partyPrefix(appID, party))
	result := make([]*Content, 0, len(elements))
	for _, e := range elements {
		if len(e.Value) < 8 {
			fault.Panicf("ledger: truncated content index: %x", e.Key)
		}
		id := binary.BigEndian.Uint64(e.Value)
		c, ok := l.GetContent(id)
		if !ok {
			fault.Panicf("ledger: content index refers to missing content: %d", id)
		}
		result = append(result, c)
	}
	return result
}
