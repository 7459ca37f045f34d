/*
Copyright © 2021 the oemoflex authors.
This file is part of oemoflex.

oemoflex is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

oemoflex is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with oemoflex.  If not, see <http://www.gnu.org/licenses/>.
*/

package oemoflex

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Period is the resampling period for aggregated flows. The empty period
// aggregates the whole time horizon into one value.
type Period string

// Supported resampling periods.
const (
	PeriodNone    Period = ""
	PeriodDaily   Period = "daily"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// truncate maps t to the starting timestamp of the period bucket it falls
// into.
func (p Period) truncate(t time.Time) (time.Time, error) {
	switch p {
	case PeriodDaily:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), nil
	case PeriodMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()), nil
	case PeriodYearly:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location()), nil
	}
	return time.Time{}, fmt.Errorf("oemoflex: unsupported resampling period %q", p)
}

// resampleBuckets splits a chronologically ordered time axis into contiguous
// period buckets, returning the bucket start times and the end offset of each
// bucket within the axis.
func resampleBuckets(index []time.Time, p Period) (starts []time.Time, ends []int, err error) {
	var current time.Time
	for i, t := range index {
		bucket, err := p.truncate(t)
		if err != nil {
			return nil, nil, err
		}
		if i == 0 || !bucket.Equal(current) {
			current = bucket
			starts = append(starts, bucket)
			ends = append(ends, i)
		}
		ends[len(ends)-1] = i + 1
	}
	return starts, ends, nil
}

// resampleSum sums vals within each period bucket of the axis.
func resampleSum(vals []float64, ends []int) []float64 {
	out := make([]float64, len(ends))
	start := 0
	for i, end := range ends {
		out[i] = floats.Sum(vals[start:end])
		start = end
	}
	return out
}
