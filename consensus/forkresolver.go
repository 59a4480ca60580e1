package consensus

// FindFork walks tip and longer back to their lowest common ancestor
// using lookup to resolve PrevBlock links, rewinding the taller branch
// first (§4.8). Returns an error if either branch runs off the end of
// the index before meeting, which would indicate a broken invariant
// (an alternate-branch header missing from storage).
func FindFork(tip *Header, longer *Header, lookup AncestorLookup) (*Header, error) {
	fork, cand := tip, longer
	for fork.Hash() != cand.Hash() {
		for cand.Height > fork.Height {
			next, ok := lookup(cand.PrevBlock)
			if !ok {
				return nil, chainerr(EUnknownAncestor, "fork resolution: candidate ancestor missing")
			}
			cand = next
		}
		if fork.Hash() == cand.Hash() {
			break
		}
		next, ok := lookup(fork.PrevBlock)
		if !ok {
			return nil, chainerr(EUnknownAncestor, "fork resolution: tip ancestor missing")
		}
		fork = next
	}
	return fork, nil
}

// ReorgPlan is the precomputed disconnect/connect lists for splicing the
// main chain from its current tip onto a competing, higher-work branch.
// Disconnect is ordered tip-downward (highest height first); Connect is
// ordered bottom-upward (fork+1 first, candidate last). Building both as
// plain slices — rather than mutating a scratch Next pointer on the
// (otherwise immutable) header records, as the original implementation
// does — keeps Header free of reorg-local mutable state and makes the
// plan trivial to stage and commit atomically (§9 open question on reorg
// atomicity: the whole Connect slice is applied, or none of it is).
type ReorgPlan struct {
	Fork       *Header
	Disconnect []*Header
	Connect    []*Header
}

// PlanReorg computes the ReorgPlan for moving the main chain tip from tip
// to candidate.
func PlanReorg(tip *Header, candidate *Header, lookup AncestorLookup) (*ReorgPlan, error) {
	fork, err := FindFork(tip, candidate, lookup)
	if err != nil {
		return nil, err
	}

	disconnect := make([]*Header, 0, int(tip.Height-fork.Height))
	for entry := tip; entry.Hash() != fork.Hash(); {
		disconnect = append(disconnect, entry)
		next, ok := lookup(entry.PrevBlock)
		if !ok {
			return nil, chainerr(EUnknownAncestor, "reorg: disconnect chain broken")
		}
		entry = next
	}

	connect := make([]*Header, 0, int(candidate.Height-fork.Height))
	for entry := candidate; entry.Hash() != fork.Hash(); {
		connect = append(connect, entry)
		next, ok := lookup(entry.PrevBlock)
		if !ok {
			return nil, chainerr(EUnknownAncestor, "reorg: connect chain broken")
		}
		entry = next
	}
	// connect was built candidate-downward; reverse to bottom-upward.
	for i, j := 0, len(connect)-1; i < j; i, j = i+1, j-1 {
		connect[i], connect[j] = connect[j], connect[i]
	}

	return &ReorgPlan{Fork: fork, Disconnect: disconnect, Connect: connect}, nil
}
