package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"promptbooth/internal/bootstrap"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := newConsoleSink(os.Stdout)
	services, err := bootstrap.Build(ctx, sink)
	app := &App{controller: services.Controller, bootErr: err}
	if err == nil {
		defer services.Close()
		services.Controller.StartSession(ctx)
	} else {
		fmt.Fprintln(os.Stderr, "startup failed:", err)
	}

	fmt.Println("commands: start stop retake submit new status quit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		reply, quit := app.Handle(ctx, scanner.Text())
		if reply != "" {
			fmt.Println(reply)
		}
		if quit {
			break
		}
	}
}
