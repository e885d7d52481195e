package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nineking424/kafka-dist/shared/configdoc"
	"github.com/stretchr/testify/suite"
)

type OutputSuite struct {
	suite.Suite
	outputDir string
}

func (s *OutputSuite) SetupTest() {
	s.outputDir = s.T().TempDir()
}

func (s *OutputSuite) document() *configdoc.Document {
	doc := configdoc.New()
	doc.Set("node.id", "4")
	doc.Set("process.roles", "broker")
	return doc
}

func (s *OutputSuite) TestWritesPropertiesAndEnvFiles() {
	s.Require().NoError(writeOutputs(s.outputDir, s.document()))

	properties, err := os.ReadFile(filepath.Join(s.outputDir, PropertiesFileName))
	s.Require().NoError(err)
	s.Require().Equal("node.id=4\nprocess.roles=broker\n", string(properties))

	env, err := os.ReadFile(filepath.Join(s.outputDir, EnvFileName))
	s.Require().NoError(err)
	s.Require().Equal("KAFKA_NODE_ID=4\nKAFKA_PROCESS_ROLES=broker\n", string(env))
}

func (s *OutputSuite) TestCreatesOutputDirectory() {
	nested := filepath.Join(s.outputDir, "generated", "config")
	s.Require().NoError(writeOutputs(nested, s.document()))

	_, err := os.Stat(filepath.Join(nested, PropertiesFileName))
	s.Require().NoError(err)
}

func (s *OutputSuite) TestLeavesNoTempFilesBehind() {
	s.Require().NoError(writeOutputs(s.outputDir, s.document()))

	entries, err := os.ReadDir(s.outputDir)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
}

func (s *OutputSuite) TestOverwritesPreviousRun() {
	s.Require().NoError(writeOutputs(s.outputDir, s.document()))

	doc := s.document()
	doc.Set("node.id", "5")
	s.Require().NoError(writeOutputs(s.outputDir, doc))

	properties, err := os.ReadFile(filepath.Join(s.outputDir, PropertiesFileName))
	s.Require().NoError(err)
	s.Require().Equal("node.id=5\nprocess.roles=broker\n", string(properties))
}

func TestOutputSuite(t *testing.T) {
	suite.Run(t, new(OutputSuite))
}
