package kv

import (
	"lintang/congestionnav/pkg/simulation"

	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
)

func Encode(rounds []simulation.RoundResult) ([]byte, error) {
	return binary.Marshal(rounds)
}

func Decode(bb []byte) ([]simulation.RoundResult, error) {
	var rounds []simulation.RoundResult
	if err := binary.Unmarshal(bb, &rounds); err != nil {
		return nil, err
	}
	return rounds, nil
}

func Compress(bb []byte) ([]byte, error) {
	var bbCompressed []byte
	bbCompressed, err := zstd.Compress(bbCompressed, bb)
	if err != nil {
		return []byte{}, err
	}
	return bbCompressed, nil
}

func Decompress(bbCompressed []byte) ([]byte, error) {
	var bb []byte
	bb, err := zstd.Decompress(bb, bbCompressed)
	if err != nil {
		return []byte{}, err
	}
	return bb, nil
}

// CompressRounds encode + zstd.
func CompressRounds(rounds []simulation.RoundResult) ([]byte, error) {
	bb, err := Encode(rounds)
	if err != nil {
		return nil, err
	}
	return Compress(bb)
}

func LoadRounds(bbCompressed []byte) ([]simulation.RoundResult, error) {
	bb, err := Decompress(bbCompressed)
	if err != nil {
		return nil, err
	}
	return Decode(bb)
}
