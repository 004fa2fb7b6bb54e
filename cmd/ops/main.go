// Operator CLI for the cafe save directory: backup, restore, reset
// and a quick look at the current save.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/ops"
	"github.com/lswwyp/Pawfee-Merge-Cafe/internal/save"
)

func main() {
	root := &cobra.Command{
		Use:           "ops",
		Short:         "Pawfee Merge Cafe save maintenance",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newBackupCmd(), newRestoreCmd(), newResetCmd(), newShowCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newBackupCmd() *cobra.Command {
	var saveDir, out string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Archive the save directory as tar.zst",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				ts := time.Now().UTC().Format("20060102T150405Z")
				out = filepath.Join("backups", "pawfee-"+ts+".tar.zst")
			}
			if err := ops.BackupSaveDir(saveDir, out); err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&saveDir, "save-dir", "data", "path to the save directory")
	cmd.Flags().StringVar(&out, "out", "", "output archive path (.tar.zst)")
	return cmd
}

func newRestoreCmd() *cobra.Command {
	var archive, target string
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Unpack a backup archive into a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if archive == "" {
				return fmt.Errorf("--archive is required")
			}
			return ops.RestoreSaveDir(archive, target)
		},
	}
	cmd.Flags().StringVar(&archive, "archive", "", "input backup archive (.tar.zst)")
	cmd.Flags().StringVar(&target, "target-dir", "data-restored", "restore target directory")
	return cmd
}

func newResetCmd() *cobra.Command {
	var saveDir string
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the save blob and start over",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing without --yes")
			}
			for _, name := range []string{"save.json", "logout.json", "save.db"} {
				path := filepath.Join(saveDir, name)
				if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
					return err
				}
			}
			fmt.Println("save reset")
			return nil
		},
	}
	cmd.Flags().StringVar(&saveDir, "save-dir", "data", "path to the save directory")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func newShowCmd() *cobra.Command {
	var saveDir string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a summary of the current save",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(filepath.Join(saveDir, "save.json"))
			if err != nil {
				return err
			}
			doc := save.DefaultDocument(time.Now())
			if err := json.Unmarshal(raw, doc); err != nil {
				return err
			}
			fmt.Printf("version:      %d\n", doc.Version)
			fmt.Printf("last save:    %s\n", doc.LastSave.Format(time.RFC3339))
			fmt.Printf("coins:        %d (lifetime %d)\n", doc.Ledger.Coins, doc.LifetimeCoins)
			fmt.Printf("gems:         %d  stars: %d\n", doc.Ledger.Gems, doc.Ledger.Stars)
			fmt.Printf("level:        player %d, cafe %d\n", doc.PlayerLevel, doc.CafeLevel)
			fmt.Printf("grid:         %dx%d, %d items\n", doc.GridCols, doc.GridRows, len(doc.Items))
			fmt.Printf("collection:   %d entries (%d unique)\n", len(doc.Collected), doc.UniqueCollected())
			fmt.Printf("eggs:         %d\n", len(doc.Eggs))
			fmt.Printf("merges:       %d  served: %d\n", doc.TotalMerges, doc.TotalServed)
			fmt.Printf("prestige:     %d resets, %d stars earned\n", doc.PrestigeCount, doc.StarsEarned)
			fmt.Printf("play days:    %d\n", doc.PlayDays)
			return nil
		},
	}
	cmd.Flags().StringVar(&saveDir, "save-dir", "data", "path to the save directory")
	return cmd
}
