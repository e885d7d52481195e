package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nineking424/kafka-dist/shared/configdoc"
	"github.com/nineking424/kafka-dist/shared/errors"
)

const (
	PropertiesFileName = "server.properties"
	EnvFileName        = "kafka.env"

	envVarPrefix = "KAFKA"
)

// writeOutputs hands the finalized document to the Kafka container: a
// server.properties for images launched with a config file, and an env file
// for images configured through KAFKA_* variables. Files are written to a
// temp name and renamed so the Kafka container never observes a partial
// document.
func writeOutputs(dir string, doc *configdoc.Document) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err)
	}

	if err := writeFileAtomic(filepath.Join(dir, PropertiesFileName), doc.Properties()); err != nil {
		return errors.Wrap(err)
	}

	env := strings.Join(doc.Environ(envVarPrefix), "\n") + "\n"
	if err := writeFileAtomic(filepath.Join(dir, EnvFileName), env); err != nil {
		return errors.Wrap(err)
	}

	return nil
}

func writeFileAtomic(path string, content string) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(content), 0644); err != nil {
		return errors.Wrap(err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Wrap(err)
	}
	return nil
}
