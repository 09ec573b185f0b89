package shunt

import "github.com/shopspring/decimal"

// valueStack is the evaluator's operand stack: a growable array that
// expands by roughly twenty percent plus one slot when full.
type valueStack struct {
	data []decimal.Decimal
	idx  int
}

func newValueStack(capacity int) *valueStack {
	if capacity <= 0 {
		panic("shunt: stack capacity must be positive")
	}
	return &valueStack{data: make([]decimal.Decimal, capacity), idx: -1}
}

func (s *valueStack) push(v decimal.Decimal) {
	if s.idx+1 == len(s.data) {
		grown := make([]decimal.Decimal, int(float64(len(s.data))*1.2)+1)
		copy(grown, s.data)
		s.data = grown
	}
	s.idx++
	s.data[s.idx] = v
}

func (s *valueStack) pop() decimal.Decimal {
	v := s.data[s.idx]
	s.idx--
	return v
}

func (s *valueStack) size() int {
	return s.idx + 1
}
