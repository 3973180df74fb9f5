package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eringen/starterblog"
	"github.com/eringen/starterblog/scaffold"
)

const placeholderAvatar = "assets/avatar.png"

type newOptions struct {
	title   string
	author  string
	twitter string
}

func newNewCmd() *cobra.Command {
	opts := &newOptions{}
	cmd := &cobra.Command{
		Use:   "new <dir>",
		Short: "Create a new site",
		Example: `  starterblog new myblog
  starterblog new myblog --title "Mon Blog" --author "Jane" --twitter jane`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.title, "title", "", "site title (default derived from dir)")
	cmd.Flags().StringVar(&opts.author, "author", "Anonyme", "author name")
	cmd.Flags().StringVar(&opts.twitter, "twitter", "", "author twitter handle")
	return cmd
}

func runNew(cmd *cobra.Command, dir string, opts *newOptions) error {
	out := cmd.OutOrStdout()
	name := filepath.Base(filepath.Clean(dir))

	data := scaffold.Data{
		ProjectName: name,
		SiteName:    opts.title,
		Author:      opts.author,
		Twitter:     opts.twitter,
		Date:        today(),
	}
	if data.SiteName == "" {
		data.SiteName = scaffold.ToTitle(name)
	}

	fmt.Fprintf(out, "Creating new starterblog site: %s\n\n", dir)

	created, err := scaffold.Generate(dir, data)
	if err != nil {
		return err
	}
	for _, p := range created {
		fmt.Fprintf(out, "  created %s\n", p)
	}

	avatarPath := filepath.Join(dir, filepath.FromSlash(placeholderAvatar))
	if err := writePlaceholder(avatarPath); err != nil {
		return fmt.Errorf("write placeholder avatar: %w", err)
	}
	fmt.Fprintf(out, "  created %s\n", avatarPath)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Done! Next steps:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  cd %s\n", dir)
	fmt.Fprintln(out, "  starterblog serve --watch")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Replace %s with your own picture and edit config.yaml.\n", placeholderAvatar)
	return nil
}

func writePlaceholder(path string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return starterblog.WritePlaceholderAvatar(f, 2*starterblog.AvatarSize)
}
