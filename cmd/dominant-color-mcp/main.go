package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/dominant-color-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("dominant-color-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("dominant-color-mcp - MCP server for dominant image colors")
			fmt.Println()
			fmt.Println("Usage: dominant-color-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  DOMINANT_COLOR_LOG_LEVEL=debug      Enable debug logging")
			fmt.Println("  DOMINANT_COLOR_RASTER=imaging       Raster backend: imaging, bild or none")
			fmt.Println("  DOMINANT_COLOR_COALESCE=false       Share one load between concurrent calls")
			fmt.Println("  DOMINANT_COLOR_MAX_BYTES=33554432   Largest image the loader will read")
			fmt.Println("  DOMINANT_COLOR_MAX_PIXELS=50000000  Largest decoded area (width*height)")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := server.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.Debug {
		log.Printf("Dominant Color MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("raster=%s coalesce=%t max_bytes=%d max_pixels=%d",
			cfg.RasterBackend, cfg.Coalesce, cfg.MaxBytes, cfg.MaxPixels)
	}

	srv, err := server.NewWithConfig(cfg)
	if err != nil {
		log.Fatalf("Server setup failed: %v", err)
	}
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
