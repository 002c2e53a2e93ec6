//go:build mage

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const templDir = "./internal/templates"

var binaries = map[string]string{
	"contact-server": "./cmd/server",
	"contact":        "./cmd/contact",
}

// Generate runs templ generate targeting the templates directory.
// The generated _templ.go files are committed; rerun after editing a .templ file.
func Generate() error {
	if _, err := exec.LookPath("templ"); err != nil {
		fmt.Println(">> templ not found; install with:")
		fmt.Println("   go install github.com/a-h/templ/cmd/templ@v0.3.1001")
		return err
	}
	fmt.Println(">> templ generate", templDir)
	return sh.Run("templ", "generate", "-path", templDir)
}

// Build generates templ output, tidies deps, then compiles both binaries into ./bin.
func Build() error {
	mg.Deps(Generate, Tidy)
	for name, pkg := range binaries {
		fmt.Printf(">> Building %s...\n", name)
		if err := sh.Run("go", "build", "-o", "bin/"+name, pkg); err != nil {
			return err
		}
	}
	return nil
}

// Run builds then executes the server binary.
func Run() error {
	mg.Deps(Build)
	fmt.Println(">> Starting server on :8080 ...")
	return sh.Run("./bin/contact-server")
}

// Dev generates templates then starts the server via go run. Ctrl-C stops it.
// Use Watch for live template reloading.
func Dev() error {
	mg.Deps(Generate)
	fmt.Println(">> Dev mode: go run ./cmd/server ...")
	server := devServer()
	if err := server.Start(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	waitForSignal()
	return server.Process.Signal(syscall.SIGTERM)
}

// Watch runs templ generate --watch in the background and the server in the
// foreground. Ctrl-C stops both.
func Watch() error {
	mg.Deps(Generate)

	fmt.Println(">> Starting templ watcher...")
	watcher := exec.Command("templ", "generate", "--watch", "-path", templDir)
	watcher.Stdout = os.Stdout
	watcher.Stderr = os.Stderr
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("start templ watcher: %w", err)
	}

	fmt.Println(">> Starting server (go run)...")
	server := devServer()
	if err := server.Start(); err != nil {
		watcher.Process.Kill()
		return fmt.Errorf("start server: %w", err)
	}

	waitForSignal()
	server.Process.Signal(syscall.SIGTERM)
	return watcher.Process.Kill()
}

func devServer() *exec.Cmd {
	server := exec.Command("go", "run", "./cmd/server")
	server.Stdout = os.Stdout
	server.Stderr = os.Stderr
	server.Env = append(os.Environ(), "HTTP_ADDR=:8080", "LOG_FORMAT=text", "LOG_LEVEL=debug")
	return server
}

func waitForSignal() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	fmt.Println("\n>> Shutting down...")
}

// Send runs the interactive terminal sender.
func Send() error {
	return sh.RunV("go", "run", "./cmd/contact", "send")
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println(">> go mod tidy...")
	return sh.Run("go", "mod", "tidy")
}

// Test generates templates then runs all unit tests with the race detector.
func Test() error {
	mg.Deps(Generate)
	fmt.Println(">> Running tests...")
	return sh.RunV("go", "test", "-race", "./...")
}

// Lint runs golangci-lint if available.
func Lint() error {
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		fmt.Println(">> golangci-lint not found; skipping.")
		return nil
	}
	return sh.Run("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println(">> Cleaning...")
	return os.RemoveAll("bin")
}

// Install installs both binaries to $GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	return sh.Run("go", "install", "./cmd/server", "./cmd/contact")
}

func init() {
	err := godotenv.Load()
	if err != nil {
		slog.Warn("error loading .env file", "err", err)
	}
}
