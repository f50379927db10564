package harness

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"
	"math/rand"

	"atomics/control"
	"atomics/order"
	"atomics/ring"
	"atomics/spin"

	"golang.org/x/crypto/blake2b"
)

// TransferConfig sizes ProducerConsumer.
type TransferConfig struct {
	Capacity     int
	Items        int
	ValueMax     int
	Seed         int64
	ConsumerCore int // -1 leaves the consumer thread unpinned
}

// TransferResult is the outcome of ProducerConsumer.  The digests are
// BLAKE2b-256 over the values in the order each side saw them, so equal
// digests mean same values, same order, nothing lost or duplicated.
type TransferResult struct {
	Capacity       int    `json:"capacity"`
	Produced       uint64 `json:"produced"`
	Consumed       uint64 `json:"consumed"`
	FullRetries    uint64 `json:"full_retries"`
	ProducedDigest string `json:"produced_digest"`
	ConsumedDigest string `json:"consumed_digest"`
}

// streamDigest hashes a sequence of uint64 values order-sensitively.
type streamDigest struct {
	h   hash.Hash
	buf [8]byte
}

func newStreamDigest() *streamDigest {
	h, err := blake2b.New256(nil)
	if err != nil {
		// only possible with an oversized key
		panic(err)
	}
	return &streamDigest{h: h}
}

func (d *streamDigest) add(v uint64) {
	binary.LittleEndian.PutUint64(d.buf[:], v)
	d.h.Write(d.buf[:])
}

func (d *streamDigest) sum() string {
	return hex.EncodeToString(d.h.Sum(nil))
}

// ProducerConsumer moves cfg.Items pseudo-random values in [1, ValueMax]
// through one ring: this goroutine produces, retrying on Full; a pinned
// consumer drains until the producer raises its stop flag and the ring is
// empty.
func ProducerConsumer(cfg TransferConfig) (TransferResult, error) {
	prod, cons, err := ring.NewSPSC[uint64](cfg.Capacity)
	if err != nil {
		return TransferResult{}, fmt.Errorf("harness: ring: %w", err)
	}

	var (
		res      = TransferResult{Capacity: cfg.Capacity}
		stop     uint32
		done     = make(chan struct{})
		produced = newStreamDigest()
		consumed = newStreamDigest()
	)

	// The shared hot flag keeps the consumer in tight spin while the
	// producer signals activity.  stop is private: a global shutdown must
	// not strand the producer on a full ring.
	_, hot := control.Flags()

	// res.Consumed and consumed are written only by the consumer goroutine
	// and read after done is closed.
	ring.PinnedConsumer(cfg.ConsumerCore, cons, &stop, hot, func(v uint64) {
		consumed.add(v)
		res.Consumed++
	}, done)

	rng := rand.New(rand.NewSource(cfg.Seed))
	interrupted := false
	for i := 0; i < cfg.Items; i++ {
		if control.Stopping() {
			interrupted = true
			break
		}
		v := uint64(rng.Intn(cfg.ValueMax)) + 1
		for prod.Produce(v) != nil {
			res.FullRetries++
			spin.Wait()
		}
		produced.add(v)
		res.Produced++
		control.SignalActivity()
	}

	// Every Produce above happens before this release; the consumer drains
	// what is left once it acquires the flag.
	order.StoreRelease32(&stop, 1)
	<-done

	res.ProducedDigest = produced.sum()
	res.ConsumedDigest = consumed.sum()

	if interrupted {
		return res, ErrInterrupted
	}
	if res.Consumed != res.Produced || res.Produced != uint64(cfg.Items) {
		return res, fmt.Errorf("%w: produced %d, consumed %d, want %d",
			ErrInvariant, res.Produced, res.Consumed, cfg.Items)
	}
	if res.ProducedDigest != res.ConsumedDigest {
		return res, fmt.Errorf("%w: consumed stream differs from produced stream", ErrInvariant)
	}
	if !prod.Ring().IsEmpty() {
		return res, fmt.Errorf("%w: ring not empty after consumer exit", ErrInvariant)
	}
	return res, nil
}
