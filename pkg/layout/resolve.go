package layout

// Resolve turns column specs into concrete widths. available is the total
// width of one output line; a negative value means unbounded. contentWidths
// comes from ContentWidths and fixes the column count: columns beyond
// len(columns) are "auto" with default padding.
//
// Fixed, Percent and ContentFit columns are sized first; Share columns split
// what remains evenly, earlier columns taking the remainder one unit at a
// time. When too little remains for that, Share columns split the leftover
// width padding included. A column that does not fit its allotment gives up
// padding before content, and keeps at least one character of content while
// the allotment allows it.
//
// With an unbounded width nothing wraps: Share, ContentFit and Percent columns
// all take their measured content width.
func Resolve(available int, columns []Column, contentWidths []int) ([]ResolvedColumn, error) {
	if len(columns) > len(contentWidths) {
		return nil, &TooManyColumnsError{Defined: len(columns), Found: len(contentWidths)}
	}

	n := len(contentWidths)
	widths := make([]Width, n)
	resolved := make([]ResolvedColumn, n)
	for i := 0; i < n; i++ {
		var col Column
		if i < len(columns) {
			col = columns[i]
		}
		w, err := ParseWidth(col.Width)
		if err != nil {
			return nil, err
		}
		widths[i] = w
		pad := col.padding()
		resolved[i] = ResolvedColumn{
			Kind:          w.Kind,
			PaddingLeft:   pad.Left,
			PaddingRight:  pad.Right,
			PaddingTop:    pad.Top,
			PaddingBottom: pad.Bottom,
			Align:         normalizeAlign(col.Align),
			Preprocess:    col.Preprocess,
			Postprocess:   col.Postprocess,
		}
	}

	if isUnbounded(available) {
		for i := range resolved {
			r := &resolved[i]
			r.Allotment = -1
			if widths[i].Kind == Fixed {
				r.Width = widths[i].Chars
			} else {
				r.Width = contentWidths[i]
			}
		}
		return resolved, nil
	}

	reserved, sharePad := 0, 0
	shares := make([]int, 0, n)
	for i, w := range widths {
		r := &resolved[i]
		hpad := r.PaddingLeft + r.PaddingRight
		switch w.Kind {
		case Fixed:
			r.Width = w.Chars
			r.Allotment = min(w.Chars+hpad, available)
		case Percent:
			r.Allotment = min(w.of(available), available)
			r.Width = r.Allotment - hpad
		case ContentFit:
			r.Width = min(contentWidths[i], available)
			r.Allotment = min(r.Width+hpad, available)
		default:
			shares = append(shares, i)
			sharePad += hpad
			continue
		}
		reserved += r.Allotment
	}

	if remaining := available - reserved - sharePad; remaining >= len(shares) {
		distribute(resolved, shares, remaining)
	} else {
		squeeze(resolved, shares, available-reserved, contentWidths)
	}

	for i := range resolved {
		r := &resolved[i]
		if r.Width < 1 && r.Kind != Fixed && contentWidths[i] > 0 {
			r.Width = 1
		}
		shrink(r)
	}
	return resolved, nil
}

// distribute splits remaining across the Share columns listed in shares.
// Padding comes on top of each share.
func distribute(resolved []ResolvedColumn, shares []int, remaining int) {
	if len(shares) == 0 {
		return
	}
	base := remaining / len(shares)
	extra := remaining % len(shares)
	for j, i := range shares {
		r := &resolved[i]
		r.Width = base
		if j < extra {
			r.Width++
		}
		r.Allotment = r.Width + r.PaddingLeft + r.PaddingRight
	}
}

// squeeze is distribute for when the room left cannot give every Share
// column a character beside its padding. budget is split into allotments that
// include padding, and each column asks for as much content as fits so that
// shrink gives up padding first.
func squeeze(resolved []ResolvedColumn, shares []int, budget int, contentWidths []int) {
	if len(shares) == 0 {
		return
	}
	budget = max(budget, 0)
	base := budget / len(shares)
	extra := budget % len(shares)
	for j, i := range shares {
		r := &resolved[i]
		r.Allotment = base
		if j < extra {
			r.Allotment++
		}
		r.Width = min(contentWidths[i], r.Allotment)
	}
}

// shrink fits a column into its allotment: horizontal padding is cut first,
// split in proportion to the two sides, then content width.
func shrink(r *ResolvedColumn) {
	if r.Allotment <= 0 {
		r.Allotment = 0
		r.Width, r.PaddingLeft, r.PaddingRight = 0, 0, 0
		return
	}
	r.Width = max(r.Width, 0)

	over := r.TotalWidth() - r.Allotment
	if over <= 0 {
		return
	}
	pad := r.PaddingLeft + r.PaddingRight
	if over >= pad {
		r.PaddingLeft, r.PaddingRight = 0, 0
		r.Width = r.Allotment
		return
	}
	cutLeft := over * r.PaddingLeft / pad
	r.PaddingLeft -= cutLeft
	r.PaddingRight -= over - cutLeft
}

func normalizeAlign(a Align) Align {
	switch a {
	case AlignRight, AlignCenter:
		return a
	default:
		return AlignLeft
	}
}
