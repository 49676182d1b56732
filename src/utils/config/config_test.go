package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

type ConfigTestSuite struct {
	suite.Suite
}

func (s *ConfigTestSuite) TestDefaults() {
	config := Default()
	assert.NotNil(s.T(), config)

	assert.False(s.T(), config.IsDevelopment)
	assert.Equal(s.T(), 30*time.Second, config.StopTimeout)
	assert.Equal(s.T(), uint64(100), config.Factory.MaxCollectionSupply)
	assert.Equal(s.T(), "0.0.0.0:4000", config.Gateway.RESTListenAddress)
	assert.Equal(s.T(), uint16(6379), config.Redis.Port)
	assert.True(s.T(), config.Database.Enabled)
	assert.False(s.T(), config.Redis.Enabled)
}

func (s *ConfigTestSuite) TestEnvOverride() {
	err := os.Setenv("FACTORY_FACTORY_MAX_COLLECTION_SUPPLY", "250")
	assert.Nil(s.T(), err)
	defer os.Unsetenv("FACTORY_FACTORY_MAX_COLLECTION_SUPPLY")

	config, err := Load("")
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), uint64(250), config.Factory.MaxCollectionSupply)
}

func (s *ConfigTestSuite) TestFileOverride() {
	file, err := os.CreateTemp("", "config-*.json")
	assert.Nil(s.T(), err)
	defer os.Remove(file.Name())

	_, err = file.WriteString(`{"Factory": {"MaxCollectionSupply": 42}, "IsDevelopment": true}`)
	assert.Nil(s.T(), err)
	err = file.Close()
	assert.Nil(s.T(), err)

	config, err := Load(file.Name())
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), uint64(42), config.Factory.MaxCollectionSupply)
	assert.True(s.T(), config.IsDevelopment)
}
