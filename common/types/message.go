package types

// Message is the sum type the runtime classifies, validates and handles:
// either a Block (a potential lambda proposal) or a Ballot (a lambda
// response, a lambda-like ballot, or an omega ballot). Justifications record,
// per cited validator, the set of that validator's message hashes the
// emitter observed and built on.
type Message interface {
	// MessageHash is the producer-assigned identity of this message.
	MessageHash() Hash32
	// Validator is the emitting validator.
	Validator() ValidatorID
	// Round is the round this message belongs to; it must lie on the era's
	// round lattice (startTick + k*roundLen) for some configured exponent.
	Round() Tick
	// KeyBlock ties this message to exactly one era.
	KeyBlock() Hash32
	// Justifications maps each cited validator to the set of that
	// validator's message hashes being built upon.
	Justifications() map[ValidatorID]map[Hash32]struct{}
	// IsBlock reports whether this message is a Block (true) or Ballot (false).
	IsBlock() bool
}

// Block is the leader's (or, post-era, a validator's) canonical proposal in a
// round: a potential lambda message, or, when it crosses the switch boundary,
// the era's switch block.
type Block struct {
	Hash           Hash32
	ValidatorID    ValidatorID
	RoundID        Tick
	KeyBlockHash   Hash32
	MainParent     Hash32
	JustificationsMap map[ValidatorID]map[Hash32]struct{}
	MagicBit       bool
}

func (b *Block) MessageHash() Hash32  { return b.Hash }
func (b *Block) Validator() ValidatorID { return b.ValidatorID }
func (b *Block) Round() Tick          { return b.RoundID }
func (b *Block) KeyBlock() Hash32     { return b.KeyBlockHash }
func (b *Block) Justifications() map[ValidatorID]map[Hash32]struct{} {
	return b.JustificationsMap
}
func (b *Block) IsBlock() bool { return true }

// BallotType tags a Ballot with the role its producer believed it played when
// it was created. The classifier never trusts this field on its own — §4.5
// requires classification to be re-derived from the DAG — but it is useful
// for logging and for the producer's own bookkeeping.
type BallotType uint8

const (
	BallotTypeUnknown BallotType = iota
	BallotTypeOmega
	BallotTypeLambdaResponse
	BallotTypeLambdaLike
)

func (t BallotType) String() string {
	switch t {
	case BallotTypeOmega:
		return "omega"
	case BallotTypeLambdaResponse:
		return "lambda-response"
	case BallotTypeLambdaLike:
		return "lambda-like"
	default:
		return "unknown"
	}
}

// Ballot is a validator's vote: a lambda response citing the round's lambda
// block, an omega ballot cast later in the validator's own round, or, in the
// post-era voting period, a lambda-like ballot standing in for a lambda block.
type Ballot struct {
	Hash              Hash32
	ValidatorID       ValidatorID
	RoundID           Tick
	KeyBlockHash      Hash32
	Target            Hash32
	JustificationsMap map[ValidatorID]map[Hash32]struct{}
	MessageType       BallotType
}

func (b *Ballot) MessageHash() Hash32  { return b.Hash }
func (b *Ballot) Validator() ValidatorID { return b.ValidatorID }
func (b *Ballot) Round() Tick          { return b.RoundID }
func (b *Ballot) KeyBlock() Hash32     { return b.KeyBlockHash }
func (b *Ballot) Justifications() map[ValidatorID]map[Hash32]struct{} {
	return b.JustificationsMap
}
func (b *Ballot) IsBlock() bool { return false }

// OwnJustification returns the hash this message cites for validator id's own
// prior message, if any. Used throughout classify/validate to find "the
// message's own prior round message" without re-walking the whole map.
func OwnJustification(m Message, id ValidatorID) (Hash32, bool) {
	hashes, ok := m.Justifications()[id]
	if !ok || len(hashes) == 0 {
		return Hash32{}, false
	}
	// A well-formed message cites at most one prior hash per validator in its
	// own justification slot; if several are present (a producer bug or a
	// fork reference) take any single one deterministically.
	best := Hash32{}
	set := false
	for h := range hashes {
		if !set || h.Less(best) {
			best = h
			set = true
		}
	}
	return best, set
}

// Less gives a canonical ordering over hashes, used to pick a deterministic
// representative out of a set in OwnJustification and to order hashes in the
// scale encoding of justifications.
func (h Hash32) Less(other Hash32) bool {
	for i := range h {
		if h[i] != other[i] {
			return h[i] < other[i]
		}
	}
	return false
}
