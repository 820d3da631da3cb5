// Command transitcat builds and queries a bus network catalogue.
//
// Two subcommands:
//
//	transitcat make_base      stdin: build document   -> writes the binary base file
//	transitcat process_requests  stdin: query document -> stdout: JSON array of answers
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/impactsolutionsas/transitcat/internal/frontend"
	"github.com/impactsolutionsas/transitcat/internal/jsonval"
	"github.com/impactsolutionsas/transitcat/internal/serialize"
	"github.com/impactsolutionsas/transitcat/internal/transit"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: transitcat make_base|process_requests")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "make_base":
		if err := runMakeBase(os.Stdin); err != nil {
			log.Fatalf("transitcat: make_base: %v", err)
		}
	case "process_requests":
		if err := runProcessRequests(os.Stdin, os.Stdout); err != nil {
			log.Fatalf("transitcat: process_requests: %v", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "transitcat: unknown subcommand %q\n", os.Args[1])
		os.Exit(1)
	}
}

func runMakeBase(in io.Reader) error {
	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	req, err := frontend.ParseBuildRequest(string(raw))
	if err != nil {
		return err
	}
	if req.OutputFile == "" {
		return fmt.Errorf("serialization_settings.file is required")
	}

	log.Printf("make_base: ingesting %d stops, %d buses", len(req.Stops), len(req.Buses))
	cat, err := frontend.BuildCatalogue(req)
	if err != nil {
		return err
	}
	log.Printf("make_base: catalogue built: %d stops, %d buses", cat.StopsCount(), cat.BusesCount())

	log.Printf("make_base: precomputing all-pairs routing table")
	tr := transit.Build(cat)

	out, err := os.Create(req.OutputFile)
	if err != nil {
		return fmt.Errorf("create %q: %w", req.OutputFile, err)
	}
	defer out.Close()

	if err := serialize.Save(cat, tr, req.Render, out); err != nil {
		return err
	}
	log.Printf("make_base: wrote base (graph + all-pairs table) to %s", req.OutputFile)
	return nil
}

func runProcessRequests(in io.Reader, out io.Writer) error {
	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	root, err := jsonval.Parse(string(raw))
	if err != nil {
		return fmt.Errorf("parse query document: %w", err)
	}
	serializationSettings, ok := root.Get("serialization_settings")
	if !ok {
		return fmt.Errorf("query document missing \"serialization_settings\"")
	}
	file, ok := serializationSettings.GetString("file")
	if !ok {
		return fmt.Errorf("serialization_settings missing \"file\"")
	}

	baseFile, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("open base file %q: %w", file, err)
	}
	defer baseFile.Close()

	cat, tr, renderSettings, err := serialize.Load(baseFile)
	if err != nil {
		return err
	}
	log.Printf("process_requests: loaded catalogue and routing table: %d stops, %d buses", cat.StopsCount(), cat.BusesCount())

	statRequests, err := frontend.ParseStatRequests(string(raw))
	if err != nil {
		return err
	}

	answers := frontend.AnswerStatRequests(cat, tr, renderSettings, statRequests)
	_, err = io.WriteString(out, jsonval.Write(answers))
	return err
}
