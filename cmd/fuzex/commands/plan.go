package commands

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"fuzex/internal/domain"
)

func planCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the locker geometry for the configured parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := appCtx.Extractor.Params()
			helperBytes := 20 + domain.ChecksumBytes +
				p.LockerCount*(p.SampleWidth*4+domain.NonceBytes+domain.KeyBytes)

			fmt.Printf("input bits:      %d\n", p.InputBits)
			fmt.Printf("max bit flips:   %d\n", p.MaxHammingErrors)
			fmt.Printf("lockers:         %d\n", p.LockerCount)
			fmt.Printf("sample width:    %d\n", p.SampleWidth)
			fmt.Printf("helper size:     %d bytes\n", helperBytes)
			fmt.Printf("failure bound:   %g\n", p.ReproductionFailureBound)
			fmt.Printf("forgery est.:    %.3g\n",
				float64(p.LockerCount)*math.Exp2(-float64(p.SampleWidth)))
			return nil
		},
	}
}
