package main

import (
	"flag"

	"github.com/golang/glog"
	"github.com/joho/godotenv"

	"github.com/df07/go-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "scenes", "Directory of YAML/JSON scene files")
	flag.Parse()
	defer glog.Flush()
	glog.CopyStandardLogTo("INFO")

	if err := godotenv.Load(".env"); err != nil {
		glog.V(1).Infof("no .env file loaded: %v", err)
	}

	// Create and start web server
	webServer := server.NewServer(*port, *scenesDir)

	glog.Infof("Raytracer Web Server")
	glog.Infof("Visit http://localhost:%d/api/scenes to list scenes", *port)

	if err := webServer.Start(); err != nil {
		glog.Exitf("Error starting server: %v", err)
	}
}
