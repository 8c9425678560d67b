package core

// settle applies the explored move of src into the resolver's front buffer,
// drops every gravity candidate until it rests on something, then reconciles
// the settled board into dst.
func (r *Resolver) settle(dst, src *State, dir Dir) {
	front, back := r.front, r.back
	r.apply(front, src, dir)
	front, back = r.fall(front, back)
	r.reconcile(dst, front)
	r.front, r.back = front, back
}

// fall drains the gravity stack. Each candidate is moved down one row at a
// time, swapping front and back after every drop, until explore reports it
// blocked. Drops push new candidates, so the loop ends only when nothing
// recorded can fall. It returns the buffers with front holding the result.
func (r *Resolver) fall(front, back *State) (*State, *State) {
	for len(r.gravity) > 0 {
		id := r.gravity[len(r.gravity)-1]
		r.gravity = r.gravity[:len(r.gravity)-1]
		for r.explore(front, id, DirDown) {
			r.apply(back, front, DirDown)
			front, back = back, front
		}
	}
	return front, back
}

// Settle drops every block of s as far as it goes and returns the
// reconciled result. A state that is already settled comes back equal to s.
func (r *Resolver) Settle(s *State) (*State, error) {
	if s == nil || s.Board == nil {
		return nil, ErrInvalidBoard
	}
	r.acquire()
	defer r.release()

	front, back := r.front, r.back
	front.copyFrom(s)
	for id := len(s.Blocks) - 1; id >= 0; id-- {
		r.gravity = append(r.gravity, id)
	}
	front, back = r.fall(front, back)
	dst := &State{}
	r.reconcile(dst, front)
	r.front, r.back = front, back
	return dst, nil
}
