package shunt

// convertToPostfix reorders an infix token sequence into an executable
// postfix program using an operator stack. Parentheses and argument
// separators structure the conversion and are not retained in the output.
func convertToPostfix(tokens []token) ([]token, error) {
	var (
		stack []token
		// calls records, per open parenthesis on the stack, whether it
		// opened a function argument list. Separators are legal only
		// directly inside such a parenthesis.
		calls []bool
	)
	out := make([]token, 0, len(tokens))
	for _, t := range tokens {
		switch t.kind {
		case tokenNumber, tokenVariable:
			out = append(out, t)
		case tokenFunction:
			stack = append(stack, t)
		case tokenOpen:
			calls = append(calls, len(stack) > 0 && stack[len(stack)-1].kind == tokenFunction)
			stack = append(stack, t)
		case tokenSep:
			for len(stack) > 0 && stack[len(stack)-1].kind != tokenOpen {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, &SyntaxError{Msg: "misplaced argument separator or mismatched parentheses", Col: t.pos}
			}
			if !calls[len(calls)-1] {
				return nil, &SyntaxError{Msg: "argument separator outside a function call", Col: t.pos}
			}
		case tokenClose:
			for len(stack) > 0 && stack[len(stack)-1].kind != tokenOpen {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, &SyntaxError{Msg: "mismatched parentheses", Col: t.pos}
			}
			stack = stack[:len(stack)-1]
			calls = calls[:len(calls)-1]
			// The function owning this argument list is complete.
			if len(stack) > 0 && stack[len(stack)-1].kind == tokenFunction {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
		case tokenOperator:
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.kind != tokenOperator {
					break
				}
				// Equal precedence pops left-associative operators so that
				// same-precedence chains evaluate left to right;
				// right-associative operators stack up instead.
				if top.op.Precedence > t.op.Precedence ||
					(top.op.Precedence == t.op.Precedence && !t.op.RightAssociative) {
					out = append(out, top)
					stack = stack[:len(stack)-1]
					continue
				}
				break
			}
			stack = append(stack, t)
		default:
			return nil, &SyntaxError{Msg: "unexpected token " + t.String(), Col: t.pos}
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.kind == tokenOpen {
			return nil, &SyntaxError{Msg: "mismatched parentheses", Col: top.pos}
		}
		out = append(out, top)
		stack = stack[:len(stack)-1]
	}
	return out, nil
}
