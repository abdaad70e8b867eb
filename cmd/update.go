package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/hotsquiz/internal/selfupdate"
	"github.com/spf13/cobra"
)

const updateTimeout = 2 * time.Minute

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update hotsquiz to the latest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		target, _ := cmd.Flags().GetString("to")
		current := currentVersion()

		ctx, cancel := context.WithTimeout(cmd.Context(), updateTimeout)
		defer cancel()

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(updateTimeout))
		err := checker.Update(ctx, &selfupdate.UpdateInput{
			CurrentVersion: current,
			TargetVersion:  target,
		}, func(p selfupdate.Progress) {
			fmt.Fprintln(out, p.Message)
		})

		switch {
		case err == nil:
			return nil
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Fprintln(out, "This is a development build. Install a release build to use update.")
			return nil
		case errors.Is(err, selfupdate.ErrAlreadyLatest):
			fmt.Fprintf(out, "hotsquiz %s is the latest release.\n", current)
			return nil
		case errors.Is(err, os.ErrPermission):
			return fmt.Errorf("%w\n\nThe binary is not writable; try: sudo hotsquiz update", err)
		}
		return err
	},
}

func init() {
	updateCmd.Flags().String("to", "", "Install this release tag instead of the latest (e.g. v1.2.0)")
}
