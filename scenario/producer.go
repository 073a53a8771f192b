// This file is part of Relay64.
//
// Relay64 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Relay64 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Relay64.  If not, see <https://www.gnu.org/licenses/>.


package scenario

import (
	"context"

	"github.com/relay64/relay64/digest"
	"github.com/relay64/relay64/random"
	"github.com/relay64/relay64/relay"
)

// Producer submits the payloads of a scenario to a session. The content of
// each payload is generated by a random.Random instance.
type Producer struct {
	sc     *Scenario
	rnd    *random.Random
	digest *digest.Payloads
}

// NewProducer is the preferred method of initialisation for the Producer type.
// A new random.Random instance is created if rnd is nil.
func NewProducer(sc *Scenario, rnd *random.Random) *Producer {
	if rnd == nil {
		rnd = random.NewRandom()
	}
	return &Producer{
		sc:     sc,
		rnd:    rnd,
		digest: digest.NewPayloads(),
	}
}

// Produce submits the payloads for every frame of the scenario to the
// session. Returns when all payloads have been submitted, or the context is
// done, or the session is closed.
//
// Must only be called from the producer goroutine.
func (pr *Producer) Produce(ctx context.Context, session *relay.Session) error {
	for frame := range pr.sc.Frames {
		for i, sz := range pr.sc.Payloads {
			payload := make([]byte, sz)
			pr.rnd.Fill(frame, i, payload)
			if err := session.Submit(ctx, payload); err != nil {
				return err
			}
			_, _ = pr.digest.Write(payload)
		}
	}
	return nil
}

// Hash returns the digest of the payloads submitted so far.
//
// Must not be called while Produce() is running.
func (pr *Producer) Hash() string {
	return pr.digest.Hash()
}
