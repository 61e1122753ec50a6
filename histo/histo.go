/*
 * histo.go, part of qm9.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package histo keeps histograms of dataset properties, such as the number of
//atoms per molecule, in a form that can be printed or marshaled to JSON.
package histo

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Data is a histogram. Bin i counts the values v with
//dividers[i] <= v < dividers[i+1]. Values outside the dividers are left out.
type Data struct {
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

type jsonData struct {
	Normalized bool      `json:"normalized"`
	Total      int       `json:"total"`
	Dividers   []float64 `json:"dividers"`
	Histo      []float64 `json:"histo"`
}

func (D *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonData{
		Normalized: D.normalized,
		Total:      D.total,
		Dividers:   D.dividers,
		Histo:      D.histo,
	})
}

func (D *Data) UnmarshalJSON(b []byte) error {
	var a jsonData
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a.Dividers) < 2 || len(a.Histo) != len(a.Dividers)-1 {
		return fmt.Errorf("histo: %d bins for %d dividers", len(a.Histo), len(a.Dividers))
	}
	D.normalized = a.Normalized
	D.total = a.Total
	D.dividers = a.Dividers
	D.histo = a.Histo
	return nil
}

//NewData returns a new histogram with the given dividers, which must be
//sorted and at least 2, filled with rawdata, which can be nil.
//rawdata is not modified.
func NewData(dividers []float64, rawdata []float64) *Data {
	if len(dividers) < 2 {
		panic("histo: at least 2 dividers are needed")
	}
	d := new(Data)
	//I prefer to copy the slice to avoid somebody changing it from outside
	d.dividers = append([]float64(nil), dividers...)
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.rehisto(rawdata)
	}
	return d
}

//IntDividers returns the dividers for one bin per integer in [min, max].
func IntDividers(min, max int) []float64 {
	if max < min {
		min, max = max, min
	}
	ret := make([]float64, 0, max-min+2)
	for i := min; i <= max+1; i++ {
		ret = append(ret, float64(i))
	}
	return ret
}

//FromInts returns a histogram with one bin per integer between the
//smallest and the largest of values.
func FromInts(values []int) *Data {
	if len(values) == 0 {
		return NewData([]float64{0, 1}, nil)
	}
	raw := make([]float64, len(values))
	min, max := values[0], values[0]
	for i, v := range values {
		raw[i] = float64(v)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return NewData(IntDividers(min, max), raw)
}

//AddData adds the given data point(s) to the histogram.
func (D *Data) AddData(point ...float64) {
	norma := D.normalized
	if norma {
		D.UnNormalize()
	}
	for _, v := range point {
		if v < D.dividers[0] || v >= D.dividers[len(D.dividers)-1] {
			continue
		}
		//the first divider larger than v closes v's bin.
		j := sort.Search(len(D.dividers), func(i int) bool { return D.dividers[i] > v })
		D.histo[j-1]++
		D.total++
	}
	if norma {
		D.Normalize()
	}
}

//Total returns the number of values counted in the histogram.
func (D *Data) Total() int { return D.total }

//Normalized returns true if the histogram is normalized.
func (D *Data) Normalized() bool { return D.normalized }

//Normalize turns the counts into fractions of the total.
func (D *Data) Normalize() {
	if D.normalized || D.total <= 0 {
		return
	}
	floats.Scale(1/float64(D.total), D.histo)
	D.normalized = true
}

//UnNormalize turns fractions back into counts.
func (D *Data) UnNormalize() {
	if !D.normalized {
		return
	}
	floats.Scale(float64(D.total), D.histo)
	D.normalized = false
}

//Dividers returns a copy of the dividers.
func (D *Data) Dividers() []float64 {
	return append([]float64(nil), D.dividers...)
}

//View returns the bins. Changes to the slice change the histogram.
func (D *Data) View() []float64 {
	return D.histo
}

//Sum returns the sum of all bins.
func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

//String returns one line per non-empty bin.
func (D *Data) String() string {
	lines := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		if v == 0 {
			continue
		}
		if D.normalized {
			lines = append(lines, fmt.Sprintf("%6.2f-%6.2f %9.4f", D.dividers[i], D.dividers[i+1], v))
		} else {
			lines = append(lines, fmt.Sprintf("%6.2f-%6.2f %9.0f", D.dividers[i], D.dividers[i+1], v))
		}
	}
	return strings.Join(lines, "\n")
}

func (D *Data) rehisto(rawdata []float64) {
	data := append([]float64(nil), rawdata...)
	sort.Float64s(data)
	//stat.Histogram panics instead of omitting the values that are off limits
	//so we remove them here before the call.
	maxi := sort.SearchFloat64s(data, D.dividers[len(D.dividers)-1])
	mini := sort.SearchFloat64s(data, D.dividers[0])
	data = data[mini:maxi]
	D.total = len(data)
	D.histo = stat.Histogram(nil, D.dividers, data, nil)
}
