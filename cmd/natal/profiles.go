package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func (a *app) profilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profiles",
		Aliases: []string{"profile", "p"},
		Short:   "Manage saved births",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved profiles, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.store()
			if err != nil {
				return err
			}
			profiles, err := db.ListProfiles()
			if err != nil {
				return err
			}
			if a.asJSON {
				return a.print(profiles, "")
			}
			if len(profiles) == 0 {
				fmt.Fprintln(a.out, mutedStyle.Render("no saved profiles"))
				return nil
			}
			var sb strings.Builder
			sb.WriteString(titleStyle.Render(fmt.Sprintf("%s saved", humanize.Comma(int64(len(profiles))))))
			for _, p := range profiles {
				sb.WriteString("\n")
				sb.WriteString(fmt.Sprintf("%s  %-20s %s %s  %s",
					mutedStyle.Render(p.ID[:8]),
					p.Name,
					p.Birth.Date,
					formatHour(p.Birth.Hour, p.Birth.UTCOffset),
					mutedStyle.Render("added "+humanize.Time(p.CreatedAt)),
				))
			}
			return a.print(nil, sb.String())
		},
	}

	var notes string
	add := &cobra.Command{
		Use:   "add NAME BIRTH",
		Short: "Save a birth under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := parseBirth(args[1])
			if err != nil {
				return err
			}
			db, err := a.store()
			if err != nil {
				return err
			}
			p, err := db.SaveProfile(args[0], b, notes)
			if err != nil {
				return err
			}
			return a.print(p, fmt.Sprintf("saved %s as %s", p.Name, labelStyle.Render(p.ID)))
		},
	}
	add.Flags().StringVar(&notes, "notes", "", "free-form notes")

	rm := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a saved profile by id or unique name",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.store()
			if err != nil {
				return err
			}
			p, err := findProfile(db, args[0])
			if err != nil {
				return err
			}
			if err := db.DeleteProfile(p.ID); err != nil {
				return err
			}
			return a.print(map[string]string{"deleted": p.ID}, "deleted "+p.Name)
		},
	}

	cmd.AddCommand(list, add, rm)
	return cmd
}
