package main

import "projection-video-3d/cmd"

func main() {
	cmd.Execute()
}
