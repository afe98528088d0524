package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func lsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List stored enrollments",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := appCtx.Enrollments()
			if err != nil {
				return err
			}
			records, err := svc.List()
			if err != nil {
				return err
			}
			for _, r := range records {
				fmt.Printf("%s\t%d bits\t%d lockers\t%s\n",
					r.Name, r.InputBits, r.LockerCount,
					r.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}
