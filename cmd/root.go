package cmd

import (
	"fmt"

	dotenv "github.com/dsh2dsh/expx-dotenv"
	"github.com/spf13/cobra"

	"github.com/dsh2dsh/periods/cmd/db"
	"github.com/dsh2dsh/periods/cmd/internal/common"
	"github.com/dsh2dsh/periods/counter"
)

var (
	verbose bool

	rootCmd = cobra.Command{
		Use:   "periods",
		Short: "Month and quarter arithmetic, parsing and formatting",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			common.SetupLogger(verbose)
			counter.Init()
			return loadEnvs()
		},
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"log debug messages")

	rootCmd.AddCommand(&db.Cmd)
	rootCmd.AddCommand(&monthCmd)
	rootCmd.AddCommand(&quarterCmd)
	rootCmd.AddCommand(&convertCmd)
	rootCmd.AddCommand(&rangeCmd)
	rootCmd.AddCommand(&stepsCmd)
}

func Execute(version string) {
	rootCmd.Version = version
	cobra.CheckErr(rootCmd.Execute())
}

func loadEnvs() error {
	if err := dotenv.New().WithDepth(1).Load(); err != nil {
		return fmt.Errorf("load periods envs: %w", err)
	}
	return nil
}
