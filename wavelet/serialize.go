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
	"bytes"

	"github.com/succinctfm/fmindex/huffman"
	"github.com/succinctfm/fmindex/rrr"
	"github.com/succinctfm/fmindex/serial"
)

// MarshalBinary frames the whole wavelet tree: the hyperblock/superblock
// rank tables plus, per superblock, its local alphabet map and its blocks'
// Huffman trees. Block headers are framed field by field through the
// shared serial envelope rather than bit-packed; a restored tree answers
// Rank, Access and InverseSelect identically to the original.
func (w *FBBWavelet) MarshalBinary() ([]byte, error) {
	sw := serial.NewWriter()
	sw.WriteUint64(w.n)
	sw.WriteUint32(uint32(w.sigma))
	sw.WriteUint64(w.sbSize)
	sw.WriteUint64Slice(w.count)
	sw.WriteUint32(uint32(w.numHyper))
	sw.WriteUint32(uint32(w.numSuper))
	sw.WriteUint64Slice(w.hyperBlockRank)
	sw.WriteUint64Slice(w.superBlockRank)
	sw.WriteInt32Slice(w.globalMapping)

	for i := range w.superblocks {
		blob, err := marshalSuperblock(&w.superblocks[i])
		if err != nil {
			return nil, err
		}

		sw.WriteBytes(blob)
	}

	var buf bytes.Buffer
	if _, err := sw.WriteTo(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// UnmarshalFBBWavelet rebuilds a wavelet tree from MarshalBinary's output.
func UnmarshalFBBWavelet(data []byte) (*FBBWavelet, error) {
	r, err := serial.NewReader(data)
	if err != nil {
		return nil, err
	}

	w := &FBBWavelet{}
	w.n = r.ReadUint64()
	w.sigma = int(r.ReadUint32())
	w.sbSize = r.ReadUint64()
	w.count = r.ReadUint64Slice()
	w.numHyper = int(r.ReadUint32())
	w.numSuper = int(r.ReadUint32())
	w.hyperBlockRank = r.ReadUint64Slice()
	w.superBlockRank = r.ReadUint64Slice()
	w.globalMapping = r.ReadInt32Slice()
	w.superblocks = make([]superblockData, w.numSuper)

	for i := range w.superblocks {
		blob := r.ReadBytes()

		sb, err := unmarshalSuperblock(blob)
		if err != nil {
			return nil, err
		}

		w.superblocks[i] = sb
	}

	return w, nil
}

func marshalSuperblock(sb *superblockData) ([]byte, error) {
	sw := serial.NewWriter()
	sw.WriteUint32(uint32(sb.sigma))
	sw.WriteUint32(uint32(sb.blockSizeLog))
	sw.WriteUint64(sb.blockSize)
	sw.WriteInt32Slice(sb.localToGlobal)
	sw.WriteUint32(uint32(len(sb.blocks)))

	for i := range sb.blocks {
		blob, err := marshalBlock(&sb.blocks[i])
		if err != nil {
			return nil, err
		}

		sw.WriteBytes(blob)
	}

	var buf bytes.Buffer
	if _, err := sw.WriteTo(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func unmarshalSuperblock(data []byte) (superblockData, error) {
	r, err := serial.NewReader(data)
	if err != nil {
		return superblockData{}, err
	}

	sb := superblockData{}
	sb.sigma = int(r.ReadUint32())
	sb.blockSizeLog = uint(r.ReadUint32())
	sb.blockSize = r.ReadUint64()
	sb.localToGlobal = r.ReadInt32Slice()

	numBlocks := int(r.ReadUint32())
	sb.blocks = make([]blockData, numBlocks)

	for i := range sb.blocks {
		blob := r.ReadBytes()

		blk, err := unmarshalBlock(blob)
		if err != nil {
			return superblockData{}, err
		}

		sb.blocks[i] = blk
	}

	return sb, nil
}

func marshalBlock(b *blockData) ([]byte, error) {
	sw := serial.NewWriter()
	sw.WriteUint32(uint32(b.treeHeight))
	sw.WriteInt32Slice([]int32{b.soleLocalID, b.soleGlobalID})
	sw.WriteUint64Slice(b.boundaryRank)

	if b.treeHeight == 0 {
		var buf bytes.Buffer
		if _, err := sw.WriteTo(&buf); err != nil {
			return nil, err
		}

		return buf.Bytes(), nil
	}

	sw.WriteInt32Slice(b.blockLocalID)
	sw.WriteUint32(uint32(len(b.nodes)))

	for _, n := range b.nodes {
		sw.WriteInt32Slice([]int32{n.left, n.right})

		isLeaf := byte(0)
		if n.isLeaf {
			isLeaf = 1
		}

		sw.WriteUint8(isLeaf)
		sw.WriteInt32Slice([]int32{n.leafSym})
		sw.WriteUint64(n.leafBoundaryRank)

		if !n.isLeaf {
			blob, err := n.bv.MarshalBinary()
			if err != nil {
				return nil, err
			}

			sw.WriteBytes(blob)
		}
	}

	sw.WriteUint32(uint32(len(b.codes)))

	for i, c := range b.codes {
		sw.WriteUint8(c.Length)
		sw.WriteUint32(c.Bits)
		sw.WriteInt32Slice(b.codePaths[i])
	}

	var buf bytes.Buffer
	if _, err := sw.WriteTo(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func unmarshalBlock(data []byte) (blockData, error) {
	r, err := serial.NewReader(data)
	if err != nil {
		return blockData{}, err
	}

	b := blockData{}
	b.treeHeight = int(r.ReadUint32())

	sole := r.ReadInt32Slice()
	b.soleLocalID, b.soleGlobalID = sole[0], sole[1]
	b.boundaryRank = r.ReadUint64Slice()

	if b.treeHeight == 0 {
		return b, nil
	}

	b.blockLocalID = r.ReadInt32Slice()
	numNodes := int(r.ReadUint32())
	b.nodes = make([]node, numNodes)

	for i := range b.nodes {
		lr := r.ReadInt32Slice()
		b.nodes[i].left, b.nodes[i].right = lr[0], lr[1]
		b.nodes[i].isLeaf = r.ReadUint8() == 1
		sym := r.ReadInt32Slice()
		b.nodes[i].leafSym = sym[0]
		b.nodes[i].leafBoundaryRank = r.ReadUint64()

		if !b.nodes[i].isLeaf {
			blob := r.ReadBytes()

			bv, err := rrr.UnmarshalBitVec(blob)
			if err != nil {
				return blockData{}, err
			}

			b.nodes[i].bv = bv
		}
	}

	numCodes := int(r.ReadUint32())
	b.codes = make([]huffman.Code, numCodes)
	b.codePaths = make([][]int32, numCodes)

	for i := range b.codes {
		length := r.ReadUint8()
		bits := r.ReadUint32()
		b.codes[i] = huffman.Code{Length: length, Bits: bits}
		b.codePaths[i] = r.ReadInt32Slice()
	}

	return b, nil
}
