/*
Copyright 2011-2024 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package wavelet

// Rank returns the number of occurrences of symbol c among the first pos
// symbols of the indexed sequence. pos < 0 is clamped to 0, pos > Len()
// is clamped to Len(); c outside [0,sigma) returns 0.
func (w *FBBWavelet) Rank(pos int64, c int32) uint64 {
	if c < 0 || int(c) >= w.sigma {
		return 0
	}

	p := clampPos(pos, w.n)

	if p == 0 {
		return 0
	}

	hb := int(p / hyperBlockSpan)
	if hb >= w.numHyper {
		hb = w.numHyper - 1
	}

	sb := int(p / superBlockSizeFor(w))
	if sb >= w.numSuper {
		sb = w.numSuper - 1
	}

	rank := w.hyperBlockRank[hb*w.sigma+int(c)] + w.superBlockRank[sb*w.sigma+int(c)]

	supLocal := w.globalMapping[sb*w.sigma+int(c)]
	if supLocal == -1 {
		return rank
	}

	sbData := &w.superblocks[sb]
	sbOffset := uint64(sb) * superBlockSizeFor(w)
	blockIdx := (p - sbOffset) / sbData.blockSize

	if blockIdx >= uint64(len(sbData.blocks)) {
		blockIdx = uint64(len(sbData.blocks)) - 1
	}

	blk := &sbData.blocks[blockIdx]

	if blockLocal, ok := blk.hasLocal(supLocal); ok {
		posInBlock := p - (sbOffset + blockIdx*sbData.blockSize)
		return rank + blk.boundaryRankFor(supLocal) + blk.rankWithin(blockLocal, posInBlock)
	}

	// This block doesn't contain c: scan forward within the superblock.
	for bi := blockIdx + 1; bi < uint64(len(sbData.blocks)); bi++ {
		next := &sbData.blocks[bi]

		if _, ok := next.hasLocal(supLocal); ok {
			return rank + next.boundaryRankFor(supLocal)
		}
	}

	if sb+1 < w.numSuper {
		return w.hyperBlockRank[hb*w.sigma+int(c)] + w.superBlockRank[(sb+1)*w.sigma+int(c)]
	}

	return w.count[c]
}

// boundaryRankFor returns the boundary rank for a superblock-local id,
// valid whether or not the block actually contains it (it's always
// defined as the cumulative count before the block within the
// superblock).
func (b *blockData) boundaryRankFor(supLocalID int32) uint64 {
	return b.boundaryRank[supLocalID]
}

// InverseSelect returns (occurrence, symbol) for position pos: symbol is
// the sequence's value at pos, and occurrence is the number of times that
// symbol occurred in the sequence up to and including pos (i.e.
// Rank(pos+1, symbol)). pos >= Len() is clamped to Len()-1.
func (w *FBBWavelet) InverseSelect(pos uint64) (uint64, int32) {
	if pos >= w.n {
		pos = w.n - 1
	}

	hb := int(pos / hyperBlockSpan)
	sb := int(pos / superBlockSizeFor(w))
	sbData := &w.superblocks[sb]
	sbOffset := uint64(sb) * superBlockSizeFor(w)
	blockIdx := (pos - sbOffset) / sbData.blockSize
	posInBlock := pos - (sbOffset + blockIdx*sbData.blockSize)

	blk := &sbData.blocks[blockIdx]
	within, globalSym, boundary := blk.locate(posInBlock)

	occurrence := w.hyperBlockRank[hb*w.sigma+int(globalSym)] +
		w.superBlockRank[sb*w.sigma+int(globalSym)] +
		boundary + within + 1

	return occurrence, globalSym
}

// Access returns the symbol at position pos.
func (w *FBBWavelet) Access(pos uint64) int32 {
	_, sym := w.InverseSelect(pos)
	return sym
}

func clampPos(pos int64, n uint64) uint64 {
	if pos <= 0 {
		return 0
	}

	if uint64(pos) >= n {
		return n
	}

	return uint64(pos)
}

// superBlockSizeFor returns the superblock size this wavelet was built
// with, as stored at build time (Build always uses the fixed constant;
// tests may use a smaller size via the unexported build constructor).
func superBlockSizeFor(w *FBBWavelet) uint64 {
	return w.sbSize
}
