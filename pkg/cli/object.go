package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/cli/config"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/model"
	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func cmdObject() *cli.Command {
	var clientCfg config.Client

	return &cli.Command{
		Name:  "object",
		Usage: "Manage stored objects",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List stored objects",
				Flags: append(clientCfg.Flags(),
					&cli.StringFlag{Name: "content-type", Usage: "Filter by content type"},
					&cli.StringFlag{Name: "type", Usage: "Filter by object type"},
					&cli.IntFlag{Name: "limit", Value: 100},
					&cli.IntFlag{Name: "offset"},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					client, err := clientCfg.Configure(ctx)
					if err != nil {
						return err
					}
					objects, err := client.ListObjects(ctx, model.ObjectListOptions{
						ContentType: c.String("content-type"),
						Type:        c.String("type"),
						Limit:       int(c.Int("limit")),
						Offset:      int(c.Int("offset")),
					})
					if err != nil {
						return err
					}
					for _, object := range objects {
						contentType := "-"
						if object.ContentType != nil {
							contentType = *object.ContentType
						}
						size := int64(0)
						if object.SizeBytes != nil {
							size = *object.SizeBytes
						}
						fmt.Printf("%-36s %-28s %d\n", object.ObjectID, contentType, size)
					}
					return nil
				},
			},
			{
				Name:  "upload",
				Usage: "Upload a file as a stored object",
				Flags: append(clientCfg.Flags(),
					&cli.StringFlag{Name: "id", Usage: "Object ID (generated when omitted)"},
					&cli.StringFlag{Name: "file", Usage: "Path to the file to upload", Required: true},
					&cli.StringFlag{Name: "content-type", Usage: "MIME content type", Required: true},
					&cli.StringFlag{Name: "usage-hint", Usage: "Usage hint, e.g. mission_video"},
					&cli.StringFlag{Name: "type", Usage: "Object type, e.g. heatmap"},
					&cli.StringFlag{Name: "entity", Usage: "Attach a reference to this entity"},
					&cli.StringFlag{Name: "task", Usage: "Attach a reference to this task"},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					client, err := clientCfg.Configure(ctx)
					if err != nil {
						return err
					}

					f, err := os.Open(c.String("file"))
					if err != nil {
						return goerr.Wrap(err, "failed to open upload file", goerr.V("path", c.String("file")))
					}
					defer f.Close()

					id := c.String("id")
					if id == "" {
						id = uuid.NewString()
					}

					req := &model.UploadObjectRequest{
						ObjectID:    types.ObjectID(id),
						Data:        f,
						FileName:    filepath.Base(c.String("file")),
						ContentType: c.String("content-type"),
						UsageHint:   c.String("usage-hint"),
						Type:        c.String("type"),
					}
					if c.String("entity") != "" || c.String("task") != "" {
						ref := model.ObjectReferenceItem{}
						if v := c.String("entity"); v != "" {
							eid := types.EntityID(v)
							ref.EntityID = &eid
						}
						if v := c.String("task"); v != "" {
							tid := types.TaskID(v)
							ref.TaskID = &tid
						}
						req.ReferencedBy = []model.ObjectReferenceItem{ref}
					}

					stored, err := client.UploadObject(ctx, req)
					if err != nil {
						return err
					}
					return printJSON(stored)
				},
			},
			{
				Name:  "download",
				Usage: "Download raw object content",
				Flags: append(clientCfg.Flags(),
					&cli.StringFlag{Name: "id", Usage: "Object ID", Required: true},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output path (stdout when omitted)"},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					client, err := clientCfg.Configure(ctx)
					if err != nil {
						return err
					}

					content, err := client.DownloadObject(ctx, types.ObjectID(c.String("id")))
					if err != nil {
						return err
					}

					if output := c.String("output"); output != "" {
						if err := os.WriteFile(output, content.Data, 0600); err != nil {
							return goerr.Wrap(err, "failed to write output file", goerr.V("path", output))
						}
						return nil
					}
					_, err = os.Stdout.Write(content.Data)
					return err
				},
			},
			{
				Name:  "delete",
				Usage: "Remove a stored object",
				Flags: append(clientCfg.Flags(),
					&cli.StringFlag{Name: "id", Usage: "Object ID", Required: true},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					client, err := clientCfg.Configure(ctx)
					if err != nil {
						return err
					}
					return client.DeleteObject(ctx, types.ObjectID(c.String("id")))
				},
			},
			{
				Name:  "orphaned",
				Usage: "List objects with no remaining references",
				Flags: append(clientCfg.Flags(),
					&cli.IntFlag{Name: "limit", Value: 100},
					&cli.IntFlag{Name: "offset"},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					client, err := clientCfg.Configure(ctx)
					if err != nil {
						return err
					}
					objects, err := client.FindOrphanedObjects(ctx, model.ListOptions{
						Limit:  int(c.Int("limit")),
						Offset: int(c.Int("offset")),
					})
					if err != nil {
						return err
					}
					for _, object := range objects {
						fmt.Println(object.ObjectID)
					}
					return nil
				},
			},
		},
	}
}
