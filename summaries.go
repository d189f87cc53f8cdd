// ./summaries.go
package spk

/*
Package spk provides traversal of the singly linked summary record chain
of a DAF archive.

This program is free software; you can redistribute it and/or
modify it under the terms of the GNU General Public License
as published by the Free Software Foundation; either version 2
of the License, or (at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program; if not, write to the Free Software
Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston, MA
02110-1301, USA.
*/

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Summary is one named array descriptor from the summary chain: ND doubles
// followed by NI integers, with the parallel name from the paired name
// record.
type Summary struct {
	Name    string
	Doubles []float64
	Ints    []int32
}

// summaryControl is the three-double control block heading every summary
// record. The record pointers and the count are stored as doubles in the
// file and truncated to integers on read.
type summaryControl struct {
	Next  int
	Prev  int
	Count int
}

// parseControl decodes the control block from the head of a summary record.
func parseControl(record []byte, order binary.ByteOrder) summaryControl {
	return summaryControl{
		Next:  int(math.Float64frombits(order.Uint64(record[0:8]))),
		Prev:  int(math.Float64frombits(order.Uint64(record[8:16]))),
		Count: int(math.Float64frombits(order.Uint64(record[16:24]))),
	}
}

// encodeControl writes a control block into the head of a record buffer.
func (c summaryControl) encodeInto(record []byte, order binary.ByteOrder) {
	order.PutUint64(record[0:8], math.Float64bits(float64(c.Next)))
	order.PutUint64(record[8:16], math.Float64bits(float64(c.Prev)))
	order.PutUint64(record[16:24], math.Float64bits(float64(c.Count)))
}

// EachSummary walks the summary record chain from the file record's forward
// pointer, calling fn once per summary in file order. The traversal is a
// fresh single pass over the chain on every call; walking twice yields the
// same sequence twice. A non-nil error from fn stops the walk and is
// returned unchanged.
func (d *DAF) EachSummary(fn func(Summary) error) error {
	step := d.Record.SummaryStep()
	length := d.Record.SummaryLength()
	nd := d.Record.DoubleCount
	ni := d.Record.IntegerCount

	current := d.Record.Forward
	for current != 0 {
		record, err := d.accessor.ReadRecord(current)
		if err != nil {
			return err
		}
		control := parseControl(record, d.order)
		if control.Count < 0 || control.Count > d.Record.SummariesPerRecord() {
			return fmt.Errorf("%w: summary record %d claims %d entries, record holds at most %d",
				ErrCorruptedFile, current, control.Count, d.Record.SummariesPerRecord())
		}
		names, err := d.accessor.ReadRecord(current + 1)
		if err != nil {
			return err
		}
		for i := 0; i < control.Count; i++ {
			entry := record[SummaryControlSize+i*step:]
			entry = entry[:length]
			s := Summary{
				Name:    trimField(names[i*step : i*step+step]),
				Doubles: make([]float64, nd),
				Ints:    make([]int32, ni),
			}
			for k := 0; k < nd; k++ {
				s.Doubles[k] = math.Float64frombits(d.order.Uint64(entry[k*8:]))
			}
			for k := 0; k < ni; k++ {
				s.Ints[k] = int32(d.order.Uint32(entry[nd*8+k*4:]))
			}
			if err := fn(s); err != nil {
				return err
			}
		}
		// A non-terminal record must point forward; anything else
		// would loop or walk off the chain.
		if control.Next != 0 && control.Next <= current {
			return fmt.Errorf("%w: summary record %d links backward to %d",
				ErrCorruptedFile, current, control.Next)
		}
		current = control.Next
	}
	return nil
}

// Summaries collects the whole summary chain into a slice.
func (d *DAF) Summaries() ([]Summary, error) {
	var out []Summary
	err := d.EachSummary(func(s Summary) error {
		out = append(out, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
