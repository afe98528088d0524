package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"fuzex/internal/app"
)

var (
	home          string
	inputBits     int
	maxErrors     int
	failureBound  float64
	forgeryBound  float64
	lockerCeiling int

	appCtx *app.App
)

func Execute() error {
	root := &cobra.Command{
		Use:   "fuzex",
		Short: "Derive stable keys from noisy readings",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".fuzex")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			a, err := app.New(app.Config{
				Home:             home,
				InputBits:        inputBits,
				MaxHammingErrors: maxErrors,
				FailureBound:     failureBound,
				ForgeryBound:     forgeryBound,
				LockerCeiling:    lockerCeiling,
			})
			if err != nil {
				return err
			}
			appCtx = a
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return appCtx.Close()
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "data dir (default ~/.fuzex)")
	root.PersistentFlags().IntVar(&inputBits, "input-bits", 128, "reading length in bits")
	root.PersistentFlags().IntVar(&maxErrors, "max-errors", 8, "tolerated bit flips between readings")
	root.PersistentFlags().Float64Var(&failureBound, "failure-bound", 0, "reproduction failure bound (default 1e-4)")
	root.PersistentFlags().Float64Var(&forgeryBound, "forgery-bound", 0, "forgery bound (default 1e-4)")
	root.PersistentFlags().IntVar(&lockerCeiling, "locker-ceiling", 0, "max lockers per helper (default 4096)")

	root.AddCommand(planCmd(), enrollCmd(), reproduceCmd(), lsCmd(), rmCmd())
	return root.Execute()
}
