package rules

import (
	"fmt"

	"github.com/marcelocantos/spigot/internal/stage"
)

const (
	// hardMaxStages caps pipeline length regardless of configuration.
	hardMaxStages = 10000

	// hardMaxOperandBytes caps a single operand's size.
	hardMaxOperandBytes = 64 << 10
)

// Hardcoded returns the built-in limits that are always enforced regardless
// of configuration or --force. They block pipelines that would exhaust the
// compiler rather than ones that are merely unusual.
func Hardcoded() []CheckFunc {
	return []CheckFunc{
		checkStageCount,
		checkOperandSize,
	}
}

func checkStageCount(stages []stage.Stage) error {
	if len(stages) > hardMaxStages {
		return fmt.Errorf("pipeline has %d stages; the limit is %d", len(stages), hardMaxStages)
	}
	return nil
}

func checkOperandSize(stages []stage.Stage) error {
	for _, st := range stages {
		if len(st.Operand) > hardMaxOperandBytes {
			return fmt.Errorf("%s: operand is %d bytes; the limit is %d",
				st.Span, len(st.Operand), hardMaxOperandBytes)
		}
	}
	return nil
}
