package commands

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"fuzex/internal/util/memzero"
)

func enrollCmd() *cobra.Command {
	var (
		readingHex  string
		readingFile string
		overwrite   bool
		asB64       bool
	)
	cmd := &cobra.Command{
		Use:   "enroll [name]",
		Short: "Generate a key from a reading and store its helper",
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
			key, err := svc.Enroll(args[0], reading, overwrite)
			if err != nil {
				return err
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
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing enrollment")
	cmd.Flags().BoolVar(&asB64, "b64", false, "print the key base64-encoded")
	return cmd
}
