package model

// Retract removes the occurrence (d, p) from the word-topic,
// document-topic and topic-total counts of oldTopic. The assignment
// table is left as is until Commit. Only one occurrence can be
// retracted at a time.
func (s *State) Retract(d, p, oldTopic int) error {
	if err := s.checkOccurrence("retract", d, p); err != nil {
		return err
	}
	if s.pending != nil {
		return violation("retract", d, p, "(%d, %d) is still retracted", s.pending.doc, s.pending.pos)
	}
	if cur := s.assign[d][p]; cur != oldTopic {
		return violation("retract", d, p, "assigned to topic %d, not %d", cur, oldTopic)
	}

	w, t := uint32(s.words[d][p]), uint32(oldTopic)
	// Check all three before touching any so a failure leaves the
	// tables as they were.
	if s.wt.Get(w, t) == 0 || s.dt.Get(uint32(d), t) == 0 || s.wts.Get(t, 0) == 0 {
		return violation("retract", d, p, "count of topic %d is already zero", oldTopic)
	}
	if err := s.wt.Decr(w, t, 1); err != nil {
		return violation("retract", d, p, "%v", err)
	}
	if err := s.dt.Decr(uint32(d), t, 1); err != nil {
		return violation("retract", d, p, "%v", err)
	}
	if err := s.wts.Decr(t, 0, 1); err != nil {
		return violation("retract", d, p, "%v", err)
	}

	s.pending = &occurrence{doc: d, pos: p}
	return nil
}

// Commit assigns newTopic to the retracted occurrence (d, p) and adds
// it back to the counts.
func (s *State) Commit(d, p, newTopic int) error {
	if err := s.checkOccurrence("commit", d, p); err != nil {
		return err
	}
	if s.pending == nil {
		return violation("commit", d, p, "no occurrence is retracted")
	}
	if s.pending.doc != d || s.pending.pos != p {
		return violation("commit", d, p, "(%d, %d) is the retracted occurrence", s.pending.doc, s.pending.pos)
	}
	if newTopic < 0 || newTopic >= s.numTopics {
		return violation("commit", d, p, "topic %d out of range [0, %d)", newTopic, s.numTopics)
	}

	w, t := uint32(s.words[d][p]), uint32(newTopic)
	s.assign[d][p] = newTopic
	s.wt.Incr(w, t, 1)
	s.dt.Incr(uint32(d), t, 1)
	s.wts.Incr(t, 0, 1)

	s.pending = nil
	return nil
}

func (s *State) checkOccurrence(op string, d, p int) error {
	if d < 0 || d >= len(s.words) {
		return violation(op, d, p, "document out of range [0, %d)", len(s.words))
	}
	if p < 0 || p >= len(s.words[d]) {
		return violation(op, d, p, "position out of range [0, %d)", len(s.words[d]))
	}
	return nil
}
