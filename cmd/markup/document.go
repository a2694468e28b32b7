package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	mkerrors "github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/render"
)

func documentCmd(a *app) *cobra.Command {
	var (
		stdout bool
		sink   string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "document <file>",
		Short: "Render a tree as a full HTML document",
		Long: `Render a tree inside a DOCTYPE/html envelope and store it.

The document goes to the sink configured in markup.json: a directory on
disk (default) or an S3 bucket. S3 credentials and region come from the
standard AWS sources (environment, shared config files, instance roles);
s3.region in markup.json overrides the region.

Examples:
  markup document page.json
  markup document page.json --out public
  markup document page.json --sink s3
  markup document page.json --stdout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if sink != "" {
				a.cfg.Output.Sink = sink
			}
			if outDir != "" {
				a.cfg.Output.Dir = outDir
			}
			if stdout && (sink != "" || outDir != "") {
				return usageError("--stdout cannot be combined with --sink or --out")
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			arena, root, err := a.load(args[0])
			if err != nil {
				return err
			}

			target := render.Discard
			if !stdout {
				if target, err = a.sink(ctx); err != nil {
					return err
				}
			}

			indent := a.cfg.IndentValue()
			if indent == 0 {
				indent = -1
			}
			r := render.NewRenderer(render.RendererConfig{
				Indent:   indent,
				Sink:     target,
				Name:     a.cfg.Output.File,
				Observer: a.collector,
				Logger:   a.logger,
			})

			doc, err := r.RenderDocument(ctx, arena, root)
			if err != nil {
				return err
			}

			if stdout {
				fmt.Fprint(a.stdout, doc)
				return nil
			}
			a.success("Wrote %s (%d bytes)", a.location(target), len(doc))
			return nil
		},
	}

	cmd.Flags().BoolVar(&stdout, "stdout", false, "Print the document instead of storing it")
	cmd.Flags().StringVar(&sink, "sink", "", `Sink to use: "disk" or "s3" (default from markup.json)`)
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory for the disk sink (default from markup.json)")

	return cmd
}

// sink builds the configured document sink.
func (a *app) sink(ctx context.Context) (render.Sink, error) {
	switch a.cfg.Output.Sink {
	case "s3":
		cfg, err := loadAWSConfig(ctx, a.cfg.S3.Region)
		if err != nil {
			return nil, err
		}
		return render.NewS3Sink(s3.NewFromConfig(cfg), a.cfg.S3.Bucket, a.cfg.S3.Prefix), nil
	default:
		return render.NewDiskSink(a.cfg.OutputPath()), nil
	}
}

// loadAWSConfig resolves the SDK configuration from the environment,
// shared config files and instance roles. A region from markup.json takes
// precedence over the resolved one.
func loadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, mkerrors.New("M021").
			WithDetail("Failed to load AWS configuration").
			WithPath("s3").
			Wrap(err)
	}
	if cfg.Region == "" {
		return aws.Config{}, mkerrors.New("M021").
			WithDetail("The s3 sink needs a region").
			WithSuggestion(`Set "s3": {"region": "..."} or AWS_REGION`).
			WithPath("s3.region")
	}
	return cfg, nil
}

// location describes where the document was stored.
func (a *app) location(s render.Sink) string {
	switch s := s.(type) {
	case *render.S3Sink:
		return "s3://" + a.cfg.S3.Bucket + "/" + s.Key(a.cfg.Output.File)
	case *render.DiskSink:
		return filepath.Join(s.Dir(), a.cfg.Output.File)
	default:
		return a.cfg.Output.File
	}
}
