// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package campaign

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// MaxSize is the worst-case encoded size of a campaign body
const MaxSize = common.AddressLength + // creator
	4 + MaxTitleLen + // title
	4 + MaxOptions*(4+MaxOptionLen) + // options
	4 + MaxOptions*8 + // votes
	common.AddressLength + // mint
	8 + 8 + // start_time, end_time
	8 // total_votes

// Space is the allocated size of every campaign record
const Space = discriminatorLen + MaxSize

const discriminatorLen = 8

// Discriminator tags campaign records so a record of another type is
// never decoded as a campaign
var Discriminator = crypto.Keccak256([]byte("account:Campaign"))[:discriminatorLen]

// Encode serializes c into exactly Space bytes. Fields are written in
// declaration order, little-endian, strings and lists with a u32 length;
// the tail is zero padding.
func Encode(c *Campaign) ([]byte, error) {
	if len(c.Options) != len(c.Votes) {
		return nil, fmt.Errorf("%w: %d options, %d tallies", ErrCorruptRecord, len(c.Options), len(c.Votes))
	}

	buf := make([]byte, 0, Space)
	buf = append(buf, Discriminator...)
	buf = append(buf, c.Creator.Bytes()...)
	buf = appendString(buf, c.Title)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(c.Options)))
	for _, label := range c.Options {
		buf = appendString(buf, label)
	}
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(c.Votes)))
	for _, v := range c.Votes {
		buf = binary.LittleEndian.AppendUint64(buf, v)
	}
	buf = append(buf, c.Mint.Bytes()...)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(c.StartTime))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(c.EndTime))
	buf = binary.LittleEndian.AppendUint64(buf, c.TotalVotes)

	if len(buf) > Space {
		return nil, fmt.Errorf("%w: %d bytes exceeds allocated %d", ErrCorruptRecord, len(buf), Space)
	}
	return append(buf, make([]byte, Space-len(buf))...), nil
}

func appendString(buf []byte, s string) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s)))
	return append(buf, s...)
}

// Decode parses a record produced by Encode and checks its invariants
func Decode(data []byte) (*Campaign, error) {
	if len(data) != Space {
		return nil, fmt.Errorf("%w: size %d, want %d", ErrCorruptRecord, len(data), Space)
	}
	if !bytes.Equal(data[:discriminatorLen], Discriminator) {
		return nil, fmt.Errorf("%w: bad discriminator", ErrCorruptRecord)
	}

	r := &reader{data: data, off: discriminatorLen}
	c := &Campaign{}
	c.Creator = r.address()
	c.Title = r.string(MaxTitleLen)
	n := r.count(MaxOptions)
	for i := 0; i < n && r.err == nil; i++ {
		c.Options = append(c.Options, r.string(MaxOptionLen))
	}
	n = r.count(MaxOptions)
	for i := 0; i < n && r.err == nil; i++ {
		c.Votes = append(c.Votes, r.uint64())
	}
	c.Mint = r.address()
	c.StartTime = int64(r.uint64())
	c.EndTime = int64(r.uint64())
	c.TotalVotes = r.uint64()
	if r.err != nil {
		return nil, r.err
	}

	if len(c.Options) != len(c.Votes) {
		return nil, fmt.Errorf("%w: %d options, %d tallies", ErrCorruptRecord, len(c.Options), len(c.Votes))
	}
	var sum uint64
	for _, v := range c.Votes {
		sum += v
	}
	if sum != c.TotalVotes {
		return nil, fmt.Errorf("%w: total %d, sum %d", ErrCorruptRecord, c.TotalVotes, sum)
	}
	return c, nil
}

// reader walks a record and remembers the first failure
type reader struct {
	data []byte
	off  int
	err  error
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.off+n > len(r.data) {
		r.err = fmt.Errorf("%w: truncated at offset %d", ErrCorruptRecord, r.off)
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) uint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *reader) uint64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *reader) address() common.Address {
	return common.BytesToAddress(r.take(common.AddressLength))
}

func (r *reader) count(max int) int {
	n := r.uint32()
	if r.err == nil && n > uint32(max) {
		r.err = fmt.Errorf("%w: count %d exceeds %d", ErrCorruptRecord, n, max)
	}
	return int(n)
}

func (r *reader) string(max int) string {
	n := r.count(max)
	return string(r.take(n))
}
