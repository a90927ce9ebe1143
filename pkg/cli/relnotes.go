package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/changelog"
	"github.com/urfave/cli/v3"
)

const defaultChangelogPath = "CHANGELOG.md"

func cmdReleaseNotes() *cli.Command {
	var path string

	fileFlag := &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "Path to the changelog file",
		Value:       defaultChangelogPath,
		Destination: &path,
	}

	return &cli.Command{
		Name:  "release-notes",
		Usage: "Inspect the package release history",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print release records, most recent first",
				Flags: []cli.Flag{
					fileFlag,
					&cli.StringFlag{Name: "version", Usage: "Show only this version"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					log, err := changelog.Load(path)
					if err != nil {
						return err
					}

					releases := log.Releases
					if v := c.String("version"); v != "" {
						release := log.Find(v)
						if release == nil {
							return goerr.New("version not found in changelog", goerr.V("version", v))
						}
						releases = []changelog.Release{*release}
					}

					for _, release := range releases {
						fmt.Printf("%s - %s", color.CyanString(release.Version), release.Date)
						if release.UpstreamCommit != "" {
							fmt.Printf(" (upstream %s)", release.UpstreamCommit)
						}
						fmt.Println()
						for _, note := range release.Notes {
							fmt.Printf("  - %s\n", note)
						}
					}
					return nil
				},
			},
			{
				Name:  "lint",
				Usage: "Validate changelog structure and version ordering",
				Flags: []cli.Flag{fileFlag},
				Action: func(ctx context.Context, c *cli.Command) error {
					log, err := changelog.Load(path)
					if err != nil {
						return err
					}

					issues := changelog.Lint(log)
					if len(issues) == 0 {
						fmt.Printf("%s %d releases\n", color.GreenString("OK"), len(log.Releases))
						return nil
					}

					for _, issue := range issues {
						fmt.Printf("%s %s\n", color.RedString("ERROR"), issue)
					}
					return goerr.New("changelog validation failed",
						goerr.V("issues", len(issues)), goerr.V("path", path))
				},
			},
		},
	}
}
