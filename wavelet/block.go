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

import (
	"github.com/succinctfm/fmindex/huffman"
	"github.com/succinctfm/fmindex/rrr"
)

// buildBlock builds one block's Huffman tree from blkSeq (superblock-local
// symbol ids, in original order) and the boundary-rank snapshot taken
// before this block started.
func buildBlock(blkSeq []int32, boundary []uint64, localToGlobal []int32) blockData {
	numSuperLocal := len(boundary)

	freqs := make([]uint64, numSuperLocal)
	for _, id := range blkSeq {
		freqs[id]++
	}

	var present []int32 // superblock-local ids present in this block, ascending
	for id := 0; id < numSuperLocal; id++ {
		if freqs[id] > 0 {
			present = append(present, int32(id))
		}
	}

	if len(present) <= 1 {
		sole := int32(-1)
		soleGlobal := int32(-1)

		if len(present) == 1 {
			sole = present[0]
			soleGlobal = localToGlobal[sole]
		}

		return blockData{
			treeHeight:   0,
			boundaryRank: boundary,
			soleLocalID:  sole,
			soleGlobalID: soleGlobal,
		}
	}

	blockFreqs := make([]uint64, len(present))
	blockLocalID := make([]int32, numSuperLocal)

	for i := range blockLocalID {
		blockLocalID[i] = -1
	}

	for bi, supID := range present {
		blockFreqs[bi] = freqs[supID]
		blockLocalID[supID] = int32(bi)
	}

	lengths, maxLen := huffman.ComputeCodeLengths(blockFreqs)
	codes := huffman.GenerateCanonicalCodes(lengths)

	nodes := []node{{left: -1, right: -1}}
	codePaths := make([][]int32, len(present))

	for bi, supID := range present {
		code := codes[bi]
		path := make([]int32, code.Length)
		cur := int32(0)

		for depth := 0; depth < int(code.Length); depth++ {
			path[depth] = cur
			bit := (code.Bits >> (uint(code.Length) - 1 - uint(depth))) & 1
			cur, nodes = descend(nodes, cur, bit)
		}

		nodes[cur].isLeaf = true
		nodes[cur].leafSym = localToGlobal[supID]
		nodes[cur].leafBoundaryRank = boundary[supID]
		codePaths[bi] = path
	}

	nodeBits := make([][]bool, len(nodes))

	for _, supID := range blkSeq {
		bi := blockLocalID[supID]
		code := codes[bi]
		path := codePaths[bi]

		for depth := 0; depth < int(code.Length); depth++ {
			nodeIdx := path[depth]
			bit := (code.Bits >> (uint(code.Length) - 1 - uint(depth))) & 1
			nodeBits[nodeIdx] = append(nodeBits[nodeIdx], bit == 1)
		}
	}

	for i := range nodes {
		if nodes[i].isLeaf {
			continue
		}

		nodes[i].bv = rrr.Build(packBits(nodeBits[i]), uint64(len(nodeBits[i])), rrrSamplePeriod)
	}

	return blockData{
		treeHeight:   maxLen,
		nodes:        nodes,
		codes:        codes,
		codePaths:    codePaths,
		blockLocalID: blockLocalID,
		boundaryRank: boundary,
		soleLocalID:  -1,
		soleGlobalID: -1,
	}
}

// descend walks one bit of a code from node cur, creating a child if
// necessary, and returns the (possibly grown) node slice and the index
// reached.
func descend(nodes []node, cur int32, bit uint32) (int32, []node) {
	if bit == 0 {
		if nodes[cur].left == -1 {
			nodes = append(nodes, node{left: -1, right: -1})
			nodes[cur].left = int32(len(nodes) - 1)
		}

		return nodes[cur].left, nodes
	}

	if nodes[cur].right == -1 {
		nodes = append(nodes, node{left: -1, right: -1})
		nodes[cur].right = int32(len(nodes) - 1)
	}

	return nodes[cur].right, nodes
}

// packBits packs a bool slice into a []uint64 word array, MSB-first
// within each word, matching rrr.BitVec's bit numbering.
func packBits(bits []bool) []uint64 {
	words := make([]uint64, (len(bits)+63)/64)

	for i, b := range bits {
		if !b {
			continue
		}

		word := i / 64
		shift := 63 - (i % 64)
		words[word] |= uint64(1) << uint(shift)
	}

	return words
}
