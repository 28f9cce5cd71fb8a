package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"os/user"
	"path"

	s3thumbnail "github.com/juntaki/s3thumbnail/lib"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	yaml "gopkg.in/yaml.v2"
)

var runFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "profile, p",
		Usage: "Profile name in .aws/credentials",
	},
	cli.StringFlag{
		Name:  "input-bucket, i",
		Usage: "Input bucket name",
	},
	cli.StringFlag{
		Name:  "output-bucket, o",
		Usage: "Output bucket name (default: input bucket name + \"-thumbnail\")",
	},
	cli.IntFlag{
		Name:  "num, n",
		Usage: "Max number of objects to examine, 0 for no limit",
	},
	cli.IntFlag{
		Name:  "width, w",
		Usage: "Width of thumbnail (default: 200)",
	},
	cli.IntFlag{
		Name:  "height, h",
		Usage: "Height of thumbnail (default: 200)",
	},
	cli.IntFlag{
		Name:  "quality",
		Usage: "JPEG quality of thumbnail (default: 90)",
	},
	cli.StringFlag{
		Name:  "backend",
		Usage: "Storage backend, s3 or minio (default: s3)",
	},
	cli.StringFlag{
		Name:  "region",
		Usage: "S3 region name (default: us-east-1)",
	},
	cli.StringFlag{
		Name:  "endpoint",
		Usage: "Endpoint of S3 compatible storage",
	},
	cli.BoolFlag{
		Name:  "use-ssl",
		Usage: "Use https for the custom endpoint",
	},
	cli.StringFlag{
		Name:  "logging",
		Usage: "logging mode, production or development",
	},
}

func main() {
	// -h is the thumbnail height.
	cli.HelpFlag = cli.BoolFlag{Name: "help"}

	app := cli.NewApp()
	app.Name = "s3thumbnail"
	app.Usage = "Create thumbnails of images in S3 bucket"
	app.Version = "0.0.1"
	app.Flags = runFlags
	app.Action = run

	app.Commands = []cli.Command{
		{
			Name:   "run",
			Usage:  "Create thumbnails into the output bucket",
			Action: run,
			Flags:  runFlags,
		},
		{
			Name:   "config",
			Usage:  "Save default options to config file",
			Action: config,
			Flags:  runFlags,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func configDir(filename string) string {
	usr, err := user.Current()
	if err != nil {
		return filename
	}
	configPath := path.Join(usr.HomeDir, ".s3thumbnail")

	stat, err := os.Stat(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return filename
		}
		if err := os.Mkdir(configPath, 0700); err != nil {
			return filename
		}
	} else if !stat.IsDir() {
		return filename
	}

	return path.Join(configPath, filename)
}

func readConfig(configPath string) (*s3thumbnail.Config, error) {
	configYAML, err := ioutil.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &s3thumbnail.Config{}, nil
		}
		return nil, err
	}

	config := &s3thumbnail.Config{}
	err = yaml.Unmarshal(configYAML, config)
	if err != nil {
		return nil, errors.Wrapf(err, "broken config file %s", configPath)
	}

	return config, nil
}

// applyFlags overrides config with the flags given on the command line.
func applyFlags(c *cli.Context, config *s3thumbnail.Config) {
	if c.IsSet("profile") {
		config.Profile = c.String("profile")
	}
	if c.IsSet("input-bucket") {
		config.InputBucket = c.String("input-bucket")
	}
	if c.IsSet("output-bucket") {
		config.OutputBucket = c.String("output-bucket")
	}
	if c.IsSet("num") {
		config.MaxItems = c.Int("num")
	}
	if c.IsSet("width") {
		config.Width = c.Int("width")
	}
	if c.IsSet("height") {
		config.Height = c.Int("height")
	}
	if c.IsSet("quality") {
		config.JPEGQuality = c.Int("quality")
	}
	if c.IsSet("backend") {
		config.Backend = c.String("backend")
	}
	if c.IsSet("region") {
		config.Region = c.String("region")
	}
	if c.IsSet("endpoint") {
		config.Endpoint = c.String("endpoint")
	}
	if c.IsSet("use-ssl") {
		config.UseSSL = c.Bool("use-ssl")
	}
	if c.IsSet("logging") {
		config.Logging = c.String("logging")
	}
}

func config(c *cli.Context) error {
	config, err := readConfig(configDir("config.yml"))
	if err != nil {
		return err
	}
	applyFlags(c, config)

	configYAML, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(configDir("config.yml"), configYAML, 0600)
}

func run(c *cli.Context) error {
	config, err := readConfig(configDir("config.yml"))
	if err != nil {
		return err
	}
	applyFlags(c, config)
	config.SetDefaults()
	if err := config.Validate(); err != nil {
		return err
	}

	logger, err := s3thumbnail.NewLogger(config)
	if err != nil {
		return err
	}
	defer logger.Sync()

	storage, err := s3thumbnail.NewStorage(config, logger)
	if err != nil {
		return err
	}

	pipeline, err := s3thumbnail.NewPipeline(config, storage, logger)
	if err != nil {
		return err
	}

	// Run logs its own fatal errors.
	report, err := pipeline.Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("examined %d, written %d, failed %d\n", report.Examined, report.Written, report.Failed)
	return nil
}
