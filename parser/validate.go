package parser

import (
	"fmt"

	"github.com/jsphweid/ams/constants"
	"github.com/jsphweid/ams/diag"
	"github.com/jsphweid/ams/model"
	"github.com/jsphweid/ams/util"
)

// validateSegments runs once the whole body is read. Nothing here is fatal.
func (p *Parser) validateSegments() {
	for _, seg := range p.score.Segments {
		leftEmpty, rightEmpty := seg.Left.Empty(), seg.Right.Empty()
		if leftEmpty && rightEmpty {
			p.addErrorAt(diag.Logic, seg.Line, fmt.Sprintf("Segment '%s' has no musical content", seg.Name))
			continue
		}
		// a single-handed segment has nothing to align against
		if !leftEmpty && !rightEmpty {
			p.validateAlignment(seg)
		}
	}
}

func (p *Parser) validateAlignment(seg model.Segment) {
	n := len(seg.Left.Chunks)
	if len(seg.Right.Chunks) > n {
		n = len(seg.Right.Chunks)
	}
	for i := 0; i < n; i++ {
		left, right := seg.Left.ChunkBeats(i), seg.Right.ChunkBeats(i)
		if util.Abs(left-right) > constants.AlignmentTolerance {
			p.addErrorAt(diag.Logic, seg.Line, fmt.Sprintf(
				"Duration mismatch in segment '%s' chunk %d: LEFT=%f beats, RIGHT=%f beats",
				seg.Name, i+1, left, right))
		}
	}
}
