package main

import "github.com/adanyl0v/go-portfolio/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustOpenStorage()
	defer app.CloseStorage()

	app.MustInitServices()

	app.MustListenAndServeHTTP()
}
