package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"skyraid/repo"
)

func main() {
	levelsDir := flag.String("levels", "levels-out", "directory published levels are exported to")
	startLevel := flag.String("level", "", "level id to open directly in the design step")
	inMemory := flag.Bool("memory", false, "keep levels in memory only (no persistence)")
	flag.Parse()

	var repos repo.Repository
	if *inMemory {
		repos = repo.NewMemoryRepository()
	} else {
		r, err := repo.NewGdataRepository("skyraid")
		if err != nil {
			log.Printf("local level store unavailable, falling back to memory: %v", err)
			repos = repo.NewMemoryRepository()
		} else {
			repos = r
		}
	}

	export, err := repo.NewFileRepository(*levelsDir)
	if err != nil {
		log.Printf("export dir unavailable, publish will skip export: %v", err)
		export = nil
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("skyraid editor")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(NewGame(repos, export, *startLevel)); err != nil {
		log.Fatal(err)
	}
}
