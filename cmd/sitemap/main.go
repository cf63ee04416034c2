// Command sitemap generates sitemap.xml and robots.txt for the marketing
// site from the route manifest and blog post index.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sessionly/sessionly/internal/sitemap"
)

var (
	routesPath string
	postsPath  string
	outDir     string
	envPath    string
)

var rootCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Generate sitemap.xml and robots.txt",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sitemap.LoadDotEnv(envPath); err != nil {
			return err
		}

		manifest, err := sitemap.LoadManifest(routesPath)
		if err != nil {
			return err
		}
		slugs, err := sitemap.LoadBlogSlugs(postsPath)
		if err != nil {
			return err
		}

		count, err := sitemap.WriteFiles(manifest, slugs, outDir, time.Now())
		if err != nil {
			return err
		}

		fmt.Printf("Generated sitemap with %d routes at %s/sitemap.xml\n", count, outDir)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&routesPath, "routes", "data/routes.yaml", "Path to the route manifest")
	rootCmd.Flags().StringVar(&postsPath, "posts", "data/blog-posts.json", "Path to the blog post index")
	rootCmd.Flags().StringVar(&outDir, "out", "public", "Output directory")
	rootCmd.Flags().StringVar(&envPath, "env", ".env", "Path to a .env file with SITE_URL")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
