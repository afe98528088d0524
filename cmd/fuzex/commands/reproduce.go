package commands

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fuzex/internal/util/memzero"
)

func reproduceCmd() *cobra.Command {
	var (
		readingHex  string
		readingFile string
		asB64       bool
	)
	cmd := &cobra.Command{
		Use:   "reproduce [name]",
		Short: "Recover the key for an enrollment from a new reading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reading, err := readReading(readingHex, readingFile)
			if err != nil {
				return err
			}
			defer memzero.Zero(reading)

			svc, err := appCtx.Enrollments()
			if err != nil {
				return err
			}
			key, ok, err := svc.Reproduce(args[0], reading)
			if err != nil {
				return err
			}
			if !ok {
				// Expected outcome for a reading beyond tolerance, not a
				// fault; exit nonzero so scripts can branch on it.
				cmd.SilenceUsage = true
				return errors.New("not reproducible")
			}
			defer memzero.Zero(key[:])

			if asB64 {
				fmt.Println(base64.StdEncoding.EncodeToString(key[:]))
			} else {
				fmt.Println(hex.EncodeToString(key[:]))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&readingHex, "reading", "", "reading as hex")
	cmd.Flags().StringVar(&readingFile, "reading-file", "", "file containing the reading as hex")
	cmd.Flags().BoolVar(&asB64, "b64", false, "print the key base64-encoded")
	return cmd
}
