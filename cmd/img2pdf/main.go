// img2pdf converts an image, or a directory of images, into a single PDF.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"

	"github.com/tstromberg/img2pdf/pkg/img2pdf"
)

// nameEnv overrides the output base name.
const nameEnv = "PDF_NAME"

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "img2pdf <image path or directory>",
		Short:         "Convert images into a single PDF",
		Long:          "img2pdf scales each image to fit a Letter page, centers it, and writes one page per image to output/<name>.pdf.",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			c := configFrom(v)
			in := img2pdf.ParseInput(args[0])
			if err := convert(cmd.OutOrStdout(), in, c); err != nil {
				return err
			}

			if !v.GetBool("watch") {
				return nil
			}

			d, ok := in.(img2pdf.DirectoryPath)
			if !ok {
				return fmt.Errorf("--watch needs a directory, got %s", args[0])
			}
			return watch(cmd.Context(), cmd.OutOrStdout(), d, c)
		},
	}

	f := cmd.Flags()
	f.StringP("name", "o", img2pdf.DefaultBaseName, "output file name (.pdf is appended if missing); overrides $"+nameEnv)
	f.String("out-dir", img2pdf.DefaultOutDir, "directory to write the PDF to")
	f.Float64("margin", img2pdf.DefaultMargin, "points subtracted from the page size when scaling images")
	f.Int("max-dpi", img2pdf.DefaultMaxDPI, "downsample images above this resolution (0 keeps every pixel)")
	f.Bool("watch", false, "watch the input directory for changes and rebuild")
	cmd.PersistentFlags().String("config", "", "config file (default: ./img2pdf.yaml)")

	gfs := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(gfs)
	cmd.PersistentFlags().AddGoFlagSet(gfs)

	return cmd
}

func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		klog.Warningf("unable to load .env: %v", err)
	}

	v.SetDefault("name", img2pdf.DefaultBaseName)
	v.SetDefault("out_dir", img2pdf.DefaultOutDir)
	v.SetDefault("margin", img2pdf.DefaultMargin)
	v.SetDefault("max_dpi", img2pdf.DefaultMaxDPI)

	v.SetEnvPrefix("IMG2PDF")
	v.AutomaticEnv()
	if err := v.BindEnv("name", nameEnv); err != nil {
		return fmt.Errorf("bind env: %w", err)
	}

	for key, name := range map[string]string{
		"name":    "name",
		"out_dir": "out-dir",
		"margin":  "margin",
		"max_dpi": "max-dpi",
		"watch":   "watch",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("img2pdf")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &nf) {
			return fmt.Errorf("read config: %w", err)
		}
		return nil
	}
	klog.V(1).Infof("using config file %s", v.ConfigFileUsed())
	return nil
}

func configFrom(v *viper.Viper) *img2pdf.Config {
	c := img2pdf.DefaultConfig()
	c.BaseName = strings.TrimSpace(v.GetString("name"))
	c.OutDir = v.GetString("out_dir")
	c.Margin = v.GetFloat64("margin")
	c.MaxDPI = v.GetInt("max_dpi")
	return c
}

// convert runs one conversion and prints its progress to w.
func convert(w io.Writer, in img2pdf.Input, c *img2pdf.Config) error {
	rep, err := img2pdf.Convert(in, c)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	if rep.Empty() {
		fmt.Fprintln(w, "No images found to convert.")
		return nil
	}

	for _, r := range rep.Results {
		if r.Status == img2pdf.Added {
			fmt.Fprintf(w, "Added image: %s\n", r.Path)
			continue
		}
		fmt.Fprintf(w, "Error processing image %s: %v\n", r.Path, r.Err)
	}

	fmt.Fprintf(w, "PDF created successfully: %s\n", rep.Output)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil {
		stop()
		klog.Exitf("img2pdf failed: %v", err)
	}
	klog.Flush()
}
