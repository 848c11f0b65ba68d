// Copyright 2023 The Symplex Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bits-and-blooms/bitset"
	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"
	"golang.org/x/sync/errgroup"

	"github.com/symplex/symplex"
	"github.com/symplex/symplex/algebra"
	"github.com/symplex/symplex/constraint"
	"github.com/symplex/symplex/logger"
)

// Serialized layout: an 8-byte little-endian header length, the CBOR
// header, then the linear and quadratic constraint blocks, each
// CBOR-encoded, with their lengths recorded in the header. Variables are
// stored as bare column indices and re-bound to the reading model.

type serializedHeader struct {
	Version   string   `cbor:"version"`
	Names     []string `cbor:"names"`
	LinearLen uint64   `cbor:"linearLen"`
	QuadLen   uint64   `cbor:"quadLen"`
}

type serializedAffine struct {
	Cols     []int     `cbor:"cols"`
	Coeffs   []float64 `cbor:"coeffs"`
	Constant float64   `cbor:"constant"`
}

type serializedLinear struct {
	Expr  serializedAffine `cbor:"expr"`
	Lower float64          `cbor:"lower"`
	Upper float64          `cbor:"upper"`
}

type serializedQuad struct {
	Cols1   []int            `cbor:"cols1"`
	Cols2   []int            `cbor:"cols2"`
	QCoeffs []float64        `cbor:"qcoeffs"`
	Aff     serializedAffine `cbor:"aff"`
	Sense   uint8            `cbor:"sense"`
}

func packAffine(e *algebra.AffineExpr) serializedAffine {
	out := serializedAffine{
		Cols:     make([]int, e.NbTerms()),
		Coeffs:   make([]float64, e.NbTerms()),
		Constant: e.Constant,
	}
	for i, v := range e.Vars {
		out.Cols[i] = v.Column()
	}
	copy(out.Coeffs, e.Coeffs)
	return out
}

func (m *Model) unpackAffine(s serializedAffine) (*algebra.AffineExpr, error) {
	if len(s.Cols) != len(s.Coeffs) {
		return nil, fmt.Errorf("corrupt affine block: %d columns, %d coefficients", len(s.Cols), len(s.Coeffs))
	}
	e := &algebra.AffineExpr{
		Vars:     make([]algebra.Variable, len(s.Cols)),
		Coeffs:   make([]float64, len(s.Coeffs)),
		Constant: s.Constant,
	}
	for i, col := range s.Cols {
		if col < 0 || col >= len(m.names) {
			return nil, fmt.Errorf("corrupt affine block: column %d outside model with %d variables", col, len(m.names))
		}
		e.Vars[i] = algebra.NewVariable(m, col)
	}
	copy(e.Coeffs, s.Coeffs)
	return e, nil
}

// WriteTo serializes the model. The two constraint blocks are encoded in
// parallel.
func (m *Model) WriteTo(w io.Writer) (int64, error) {
	lin := make([]serializedLinear, len(m.linear))
	for i, c := range m.linear {
		lin[i] = serializedLinear{Expr: packAffine(c.Expr), Lower: c.Lower, Upper: c.Upper}
	}
	quads := make([]serializedQuad, len(m.quads))
	for i, c := range m.quads {
		q := serializedQuad{
			Cols1:   make([]int, c.Expr.NbQuadTerms()),
			Cols2:   make([]int, c.Expr.NbQuadTerms()),
			QCoeffs: make([]float64, c.Expr.NbQuadTerms()),
			Aff:     packAffine(&c.Expr.Aff),
			Sense:   uint8(c.Sense),
		}
		for j := range c.Expr.QCoeffs {
			q.Cols1[j] = c.Expr.QVars1[j].Column()
			q.Cols2[j] = c.Expr.QVars2[j].Column()
		}
		copy(q.QCoeffs, c.Expr.QCoeffs)
		quads[i] = q
	}

	var linBlob, quadBlob []byte
	var g errgroup.Group
	g.Go(func() error {
		var err error
		linBlob, err = cbor.Marshal(lin)
		return err
	})
	g.Go(func() error {
		var err error
		quadBlob, err = cbor.Marshal(quads)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	h := serializedHeader{
		Version:   symplex.Version.String(),
		Names:     m.names,
		LinearLen: uint64(len(linBlob)),
		QuadLen:   uint64(len(quadBlob)),
	}
	hBlob, err := cbor.Marshal(h)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := binary.Write(w, binary.LittleEndian, uint64(len(hBlob))); err != nil {
		return total, err
	}
	total += 8
	for _, blob := range [][]byte{hBlob, linBlob, quadBlob} {
		n, err := w.Write(blob)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadFrom deserializes a model previously written with WriteTo, replacing
// the receiver's contents. A version mismatch between the binary and the
// serialized object logs a warning; there are no compatibility guarantees
// across versions.
func (m *Model) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	var hLen uint64
	if err := binary.Read(r, binary.LittleEndian, &hLen); err != nil {
		return total, err
	}
	total += 8

	hBlob := make([]byte, hLen)
	n, err := io.ReadFull(r, hBlob)
	total += int64(n)
	if err != nil {
		return total, err
	}
	var h serializedHeader
	if err := cbor.Unmarshal(hBlob, &h); err != nil {
		return total, fmt.Errorf("decoding model header: %w", err)
	}

	objectVersion, err := semver.Parse(h.Version)
	if err != nil {
		return total, fmt.Errorf("parsing serialized model version: %w", err)
	}
	if symplex.Version.Compare(objectVersion) != 0 {
		log := logger.Logger()
		log.Warn().
			Str("binary", symplex.Version.String()).
			Str("object", objectVersion.String()).
			Msg("version mismatch with serialized model; no compatibility guarantees")
	}

	linBlob := make([]byte, h.LinearLen)
	n, err = io.ReadFull(r, linBlob)
	total += int64(n)
	if err != nil {
		return total, err
	}
	quadBlob := make([]byte, h.QuadLen)
	n, err = io.ReadFull(r, quadBlob)
	total += int64(n)
	if err != nil {
		return total, err
	}

	var lin []serializedLinear
	if err := cbor.Unmarshal(linBlob, &lin); err != nil {
		return total, fmt.Errorf("decoding linear constraints: %w", err)
	}
	var quads []serializedQuad
	if err := cbor.Unmarshal(quadBlob, &quads); err != nil {
		return total, fmt.Errorf("decoding quadratic constraints: %w", err)
	}

	m.names = h.Names
	m.linear = nil
	m.quads = nil
	m.used = bitset.New(uint(len(h.Names)))
	m.objSense = Minimize
	m.objective = nil

	for _, s := range lin {
		expr, err := m.unpackAffine(s.Expr)
		if err != nil {
			return total, err
		}
		c := &constraint.LinearConstraint{Expr: expr, Lower: s.Lower, Upper: s.Upper}
		if err := m.AddConstraint(c); err != nil {
			return total, err
		}
	}
	for _, s := range quads {
		if len(s.Cols1) != len(s.Cols2) || len(s.Cols1) != len(s.QCoeffs) {
			return total, fmt.Errorf("corrupt quadratic block: term lists of lengths %d, %d, %d",
				len(s.Cols1), len(s.Cols2), len(s.QCoeffs))
		}
		aff, err := m.unpackAffine(s.Aff)
		if err != nil {
			return total, err
		}
		expr := &algebra.QuadExpr{
			QVars1:  make([]algebra.Variable, len(s.Cols1)),
			QVars2:  make([]algebra.Variable, len(s.Cols2)),
			QCoeffs: make([]float64, len(s.QCoeffs)),
			Aff:     *aff,
		}
		for i := range s.Cols1 {
			if s.Cols1[i] < 0 || s.Cols1[i] >= len(m.names) || s.Cols2[i] < 0 || s.Cols2[i] >= len(m.names) {
				return total, fmt.Errorf("corrupt quadratic block: column pair (%d,%d) outside model with %d variables",
					s.Cols1[i], s.Cols2[i], len(m.names))
			}
			expr.QVars1[i] = algebra.NewVariable(m, s.Cols1[i])
			expr.QVars2[i] = algebra.NewVariable(m, s.Cols2[i])
		}
		copy(expr.QCoeffs, s.QCoeffs)
		c := &constraint.QuadConstraint{Expr: expr, Sense: constraint.Sense(s.Sense)}
		if err := m.AddConstraint(c); err != nil {
			return total, err
		}
	}
	return total, nil
}
