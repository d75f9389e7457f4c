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

// Package wavelet implements the fixed-block-boosting wavelet tree: a
// short-integer sequence is split into fixed-length superblocks, each
// split again into power-of-two blocks with their own per-block canonical
// Huffman tree, so rank and inverseSelect stay close to O(1) without
// paying for one global Huffman tree's depth. Code assignment comes from
// the huffman package and the per-tree-node bit-vectors from rrr; each
// block rebuilds its frequency table so the tree shape tracks the local
// symbol distribution.
package wavelet

import (
	"github.com/succinctfm/fmindex/bitops"
	"github.com/succinctfm/fmindex/huffman"
	"github.com/succinctfm/fmindex/rrr"
)

const (
	// superBlockSize is the fixed superblock length S = 2^20.
	superBlockSize = 1 << 20
	superBlockLog  = 20

	// hyperBlockSpan is the number of symbols a hyperblock anchors ranks
	// over, 2^32.
	hyperBlockSpan = uint64(1) << 32

	rrrSamplePeriod = 64
)

// node is one internal or leaf node of a block's Huffman tree, addressed
// by index within blockData.nodes (root at index 0).
type node struct {
	bv               *rrr.BitVec
	left             int32
	right            int32
	isLeaf           bool
	leafSym          int32
	leafBoundaryRank uint64
}

// blockData holds one block's Huffman tree and the bookkeeping needed to
// answer rank/inverseSelect queries local to the block.
type blockData struct {
	treeHeight int
	nodes      []node
	codes      []huffman.Code
	codePaths  [][]int32

	// blockLocalID[supLocalID] is this block's own local id for a
	// superblock-local symbol id, or -1 if the block never emits it.
	// Unused when treeHeight == 0.
	blockLocalID []int32

	// boundaryRank[supLocalID] is the number of occurrences of that
	// superblock-local symbol strictly before this block, within the
	// superblock.
	boundaryRank []uint64

	// Used only when treeHeight == 0 (single distinct symbol in block).
	soleLocalID  int32
	soleGlobalID int32
}

func (b *blockData) hasLocal(supLocalID int32) (int32, bool) {
	if b.treeHeight == 0 {
		if supLocalID == b.soleLocalID {
			return 0, true
		}
		return 0, false
	}

	bl := b.blockLocalID[supLocalID]
	return bl, bl != -1
}

// rankWithin returns the number of occurrences of blockLocal among the
// first posInBlock symbols of the block.
func (b *blockData) rankWithin(blockLocal int32, posInBlock uint64) uint64 {
	if b.treeHeight == 0 {
		return posInBlock
	}

	code := b.codes[blockLocal]
	path := b.codePaths[blockLocal]
	currentRank := posInBlock

	for depth := 0; depth < int(code.Length); depth++ {
		bit := (code.Bits >> (uint(code.Length) - 1 - uint(depth))) & 1
		n := b.nodes[path[depth]]

		if bit == 1 {
			currentRank = n.bv.Rank1(int64(currentRank))
		} else {
			currentRank = n.bv.Rank0(int64(currentRank))
		}
	}

	return currentRank
}

// locate walks the tree by actual bit content rather than a known code,
// returning the occurrence-within-block count, the global symbol found at
// posInBlock, and that symbol's boundary rank for the enclosing block.
func (b *blockData) locate(posInBlock uint64) (within uint64, globalSym int32, boundary uint64) {
	if b.treeHeight == 0 {
		return posInBlock, b.soleGlobalID, b.boundaryRank[b.soleLocalID]
	}

	currentRank := posInBlock
	idx := int32(0)

	for {
		n := b.nodes[idx]

		if n.isLeaf {
			return currentRank, n.leafSym, n.leafBoundaryRank
		}

		bit, _ := n.bv.Access(int64(currentRank))

		if bit == 1 {
			currentRank = n.bv.Rank1(int64(currentRank))
			idx = n.right
		} else {
			currentRank = n.bv.Rank0(int64(currentRank))
			idx = n.left
		}
	}
}

// superblockData holds one superblock's local alphabet and its blocks.
type superblockData struct {
	sigma         int
	blockSizeLog  uint
	blockSize     uint64
	localToGlobal []int32
	blocks        []blockData
}

// FBBWavelet is a fixed-block-boosting wavelet tree over a short-integer
// sequence, supporting O(1)-ish rank and inverseSelect.
type FBBWavelet struct {
	n      uint64
	sigma  int
	sbSize uint64

	count          []uint64 // final per-symbol frequencies, length sigma
	numHyper       int
	numSuper       int
	hyperBlockRank []uint64 // [numHyper*sigma]
	superBlockRank []uint64 // [numSuper*sigma]
	globalMapping  []int32  // [numSuper*sigma], -1 if symbol absent from superblock
	superblocks    []superblockData
}

// Len returns the length of the indexed sequence.
func (w *FBBWavelet) Len() uint64 { return w.n }

// AlphabetSize returns sigma.
func (w *FBBWavelet) AlphabetSize() int { return w.sigma }

// Count returns the total number of occurrences of symbol c in the
// indexed sequence.
func (w *FBBWavelet) Count(c int32) uint64 {
	if c < 0 || int(c) >= w.sigma {
		return 0
	}

	return w.count[c]
}

// Build constructs an FBBWavelet over seq, whose symbols lie in
// [0,sigma).
func Build(seq []int32, sigma int) *FBBWavelet {
	return build(seq, sigma, superBlockSize)
}

// build is the size-parameterized constructor; tests exercise small
// superblock sizes to cross block and superblock boundaries without
// allocating megabyte-scale sequences.
func build(seq []int32, sigma int, sbSize uint64) *FBBWavelet {
	n := uint64(len(seq))

	numSuper := 1
	if n > 0 {
		numSuper = int((n + sbSize - 1) / sbSize)
	}

	numHyper := 1
	if n > 0 {
		numHyper = int((n + hyperBlockSpan - 1) / hyperBlockSpan)
	}

	w := &FBBWavelet{
		n:              n,
		sigma:          sigma,
		sbSize:         sbSize,
		count:          make([]uint64, sigma),
		numHyper:       numHyper,
		numSuper:       numSuper,
		hyperBlockRank: make([]uint64, numHyper*sigma),
		superBlockRank: make([]uint64, numSuper*sigma),
		globalMapping:  make([]int32, numSuper*sigma),
		superblocks:    make([]superblockData, numSuper),
	}

	for i := range w.globalMapping {
		w.globalMapping[i] = -1
	}

	globalCount := make([]uint64, sigma)
	lastHyper := -1

	for sb := 0; sb < numSuper; sb++ {
		sbStart := uint64(sb) * sbSize
		sbEnd := sbStart + sbSize
		if sbEnd > n {
			sbEnd = n
		}

		hb := int(sbStart / hyperBlockSpan)

		if hb != lastHyper {
			copy(w.hyperBlockRank[hb*sigma:(hb+1)*sigma], globalCount)
			lastHyper = hb
		}

		for c := 0; c < sigma; c++ {
			w.superBlockRank[sb*sigma+c] = globalCount[c] - w.hyperBlockRank[hb*sigma+c]
		}

		localFreq := make([]uint64, sigma)
		for i := sbStart; i < sbEnd; i++ {
			localFreq[seq[i]]++
		}

		var localToGlobal []int32
		numSuperLocal := int32(0)

		for c := 0; c < sigma; c++ {
			if localFreq[c] > 0 {
				w.globalMapping[sb*sigma+c] = numSuperLocal
				localToGlobal = append(localToGlobal, int32(c))
				numSuperLocal++
			}
		}

		sbLocalSeq := make([]int32, sbEnd-sbStart)
		for i := range sbLocalSeq {
			sbLocalSeq[i] = w.globalMapping[sb*sigma+int(seq[sbStart+uint64(i)])]
		}

		blockSizeLog := chooseBlockSizeLog(sbLocalSeq, int(numSuperLocal))
		blockSize := uint64(1) << blockSizeLog
		numBlocks := (uint64(len(sbLocalSeq)) + blockSize - 1) / blockSize

		if numBlocks == 0 {
			numBlocks = 1
		}

		boundaryRunning := make([]uint64, numSuperLocal)
		blocks := make([]blockData, numBlocks)

		for bi := uint64(0); bi < numBlocks; bi++ {
			bStart := bi * blockSize
			bEnd := bStart + blockSize
			if bEnd > uint64(len(sbLocalSeq)) {
				bEnd = uint64(len(sbLocalSeq))
			}

			blkSeq := sbLocalSeq[bStart:bEnd]
			snapshot := append([]uint64(nil), boundaryRunning...)
			blocks[bi] = buildBlock(blkSeq, snapshot, localToGlobal)

			for _, id := range blkSeq {
				boundaryRunning[id]++
			}
		}

		w.superblocks[sb] = superblockData{
			sigma:         int(numSuperLocal),
			blockSizeLog:  blockSizeLog,
			blockSize:     blockSize,
			localToGlobal: localToGlobal,
			blocks:        blocks,
		}

		for c := 0; c < sigma; c++ {
			globalCount[c] += localFreq[c]
		}
	}

	w.count = globalCount
	return w
}

const blockHeaderBytes = 14

// chooseBlockSizeLog searches block-size exponents in
// [max(0,S_log-7), min(S_log,16)] for the one minimizing the estimated
// encoded byte count. Per-block frequency tables are tabulated once at the
// smallest candidate size and combined pairwise on each doubling; the
// compressed bit-vector cost is the smallest-block RRR size scaled by the
// ratio of uncompressed bit-vector sizes.
func chooseBlockSizeLog(sbLocalSeq []int32, numSuperLocal int) uint {
	low := 0
	if superBlockLog-7 > 0 {
		low = superBlockLog - 7
	}

	high := superBlockLog
	if high > 16 {
		high = 16
	}

	if numSuperLocal <= 1 || len(sbLocalSeq) == 0 {
		return uint(high)
	}

	numBlocks := (len(sbLocalSeq) + (1 << uint(low)) - 1) >> uint(low)
	freqs := make([][]uint64, numBlocks)

	for b := range freqs {
		freqs[b] = make([]uint64, numSuperLocal)
	}

	for i, id := range sbLocalSeq {
		freqs[i>>uint(low)][id]++
	}

	bestLog := uint(low)
	bestCost := int64(-1)
	smallestBits := int64(0)
	smallestRRRBytes := int64(0)

	for lg := low; ; lg++ {
		cost := int64(len(freqs)) * (blockHeaderBytes + int64(numSuperLocal))
		var bits int64

		for _, f := range freqs {
			var present []uint64

			for _, v := range f {
				if v > 0 {
					present = append(present, v)
				}
			}

			if len(present) <= 1 {
				continue
			}

			lengths, treeHeight := huffman.ComputeCodeLengths(present)

			for i, l := range lengths {
				bits += int64(present[i]) * int64(l)
			}

			sigmaBlock := int64(len(present))
			cost += int64(treeHeight-1)*4 + sigmaBlock*5 + (sigmaBlock-1)*2
		}

		if lg == low {
			smallestBits = bits
			smallestRRRBytes = rrrBytesFor(bits)
		}

		if smallestBits > 0 {
			cost += smallestRRRBytes * bits / smallestBits
		}

		if bestCost < 0 || cost < bestCost {
			bestCost = cost
			bestLog = uint(lg)
		}

		if lg == high {
			break
		}

		// Double the block size: adjacent frequency tables merge pairwise.
		merged := make([][]uint64, (len(freqs)+1)/2)

		for b := range merged {
			merged[b] = freqs[2*b]

			if 2*b+1 < len(freqs) {
				for c, v := range freqs[2*b+1] {
					merged[b][c] += v
				}
			}
		}

		freqs = merged
	}

	return bestLog
}

// rrrBytesFor estimates the stored size of an RRR bit-vector of the given
// bit length under the raw-plus-samples layout rrr.Build produces.
func rrrBytesFor(bits int64) int64 {
	if bits <= 0 {
		return 0
	}

	words := (bits + 63) / 64
	samples := bits/rrrSamplePeriod + 1
	width := int64(bitops.MinBits(uint64(bits)))

	return words*8 + (samples*width+7)/8
}
