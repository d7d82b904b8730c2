package types

import (
	"sort"

	"github.com/spacemeshos/go-scale"
)

// EncodeScale/DecodeScale below are written by hand in the shape scalegen
// would produce for a tagged union and its justification map (compare
// common/types/activation_scale.go in the teacher), since no generator runs
// over this module. They give Block/Ballot a canonical byte encoding, which
// adapterstest.MessageProducer hashes (via MustEncode) to assign message
// hashes.

func encodeJustifications(enc *scale.Encoder, j map[ValidatorID]map[Hash32]struct{}) (int, error) {
	total := 0
	ids := make([]ValidatorID, 0, len(j))
	for id := range j {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, k int) bool { return ids[i].Less(ids[k]) })

	n, err := scale.EncodeCompact32(enc, uint32(len(ids)))
	if err != nil {
		return total, err
	}
	total += n

	for _, id := range ids {
		n, err := scale.EncodeByteArray(enc, id[:])
		if err != nil {
			return total, err
		}
		total += n

		hashes := make([]Hash32, 0, len(j[id]))
		for h := range j[id] {
			hashes = append(hashes, h)
		}
		sort.Slice(hashes, func(i, k int) bool { return hashes[i].Less(hashes[k]) })

		n, err = scale.EncodeCompact32(enc, uint32(len(hashes)))
		if err != nil {
			return total, err
		}
		total += n
		for _, h := range hashes {
			n, err := scale.EncodeByteArray(enc, h[:])
			if err != nil {
				return total, err
			}
			total += n
		}
	}
	return total, nil
}

func decodeJustifications(dec *scale.Decoder) (map[ValidatorID]map[Hash32]struct{}, int, error) {
	total := 0
	count, n, err := scale.DecodeCompact32(dec)
	if err != nil {
		return nil, total, err
	}
	total += n

	out := make(map[ValidatorID]map[Hash32]struct{}, count)
	for i := uint32(0); i < count; i++ {
		var id ValidatorID
		n, err := scale.DecodeByteArray(dec, id[:])
		if err != nil {
			return nil, total, err
		}
		total += n

		hcount, n, err := scale.DecodeCompact32(dec)
		if err != nil {
			return nil, total, err
		}
		total += n

		hashes := make(map[Hash32]struct{}, hcount)
		for j := uint32(0); j < hcount; j++ {
			var h Hash32
			n, err := scale.DecodeByteArray(dec, h[:])
			if err != nil {
				return nil, total, err
			}
			total += n
			hashes[h] = struct{}{}
		}
		out[id] = hashes
	}
	return out, total, nil
}

// EncodeScale encodes a Block the way a scalegen-generated method would.
func (b *Block) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeByteArray(enc, b.Hash[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteArray(enc, b.ValidatorID[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeCompact64(enc, uint64(b.RoundID))
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteArray(enc, b.KeyBlockHash[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteArray(enc, b.MainParent[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := encodeJustifications(enc, b.JustificationsMap)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		bit := byte(0)
		if b.MagicBit {
			bit = 1
		}
		n, err := scale.EncodeByteArray(enc, []byte{bit})
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale decodes a Block the way a scalegen-generated method would.
func (b *Block) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		n, err := scale.DecodeByteArray(dec, b.Hash[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.DecodeByteArray(dec, b.ValidatorID[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		field, n, err := scale.DecodeCompact64(dec)
		if err != nil {
			return total, err
		}
		total += n
		b.RoundID = Tick(field)
	}
	{
		n, err := scale.DecodeByteArray(dec, b.KeyBlockHash[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.DecodeByteArray(dec, b.MainParent[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		j, n, err := decodeJustifications(dec)
		if err != nil {
			return total, err
		}
		total += n
		b.JustificationsMap = j
	}
	{
		bit := [1]byte{}
		n, err := scale.DecodeByteArray(dec, bit[:])
		if err != nil {
			return total, err
		}
		total += n
		b.MagicBit = bit[0] != 0
	}
	return total, nil
}

// EncodeScale encodes a Ballot the way a scalegen-generated method would.
func (b *Ballot) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeByteArray(enc, b.Hash[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteArray(enc, b.ValidatorID[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeCompact64(enc, uint64(b.RoundID))
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteArray(enc, b.KeyBlockHash[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteArray(enc, b.Target[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := encodeJustifications(enc, b.JustificationsMap)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteArray(enc, []byte{byte(b.MessageType)})
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale decodes a Ballot the way a scalegen-generated method would.
func (b *Ballot) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		n, err := scale.DecodeByteArray(dec, b.Hash[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.DecodeByteArray(dec, b.ValidatorID[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		field, n, err := scale.DecodeCompact64(dec)
		if err != nil {
			return total, err
		}
		total += n
		b.RoundID = Tick(field)
	}
	{
		n, err := scale.DecodeByteArray(dec, b.KeyBlockHash[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.DecodeByteArray(dec, b.Target[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		j, n, err := decodeJustifications(dec)
		if err != nil {
			return total, err
		}
		total += n
		b.JustificationsMap = j
	}
	{
		field := [1]byte{}
		n, err := scale.DecodeByteArray(dec, field[:])
		if err != nil {
			return total, err
		}
		total += n
		b.MessageType = BallotType(field[0])
	}
	return total, nil
}
