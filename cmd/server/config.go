package main

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type specification struct {
	Host           string        `default:""`
	Port           int           `default:"8000"`
	MaxBodyBytes   int64         `default:"1048576"`
	MaxConnections int           `default:"0"`
	ReadTimeout    time.Duration `default:"10s"`
	WriteTimeout   time.Duration `default:"10s"`
	RequestTimeout time.Duration `default:"5s"`
	DbFile         string        `default:""`
	LogLevel       string        `default:"info"`
}

func (s specification) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&s.MaxBodyBytes, validation.Required, validation.Min(int64(1))),
		validation.Field(&s.MaxConnections, validation.Min(0)),
		validation.Field(&s.ReadTimeout, validation.Required),
		validation.Field(&s.WriteTimeout, validation.Required),
		validation.Field(&s.RequestTimeout, validation.Required),
		validation.Field(&s.LogLevel, validation.Required, validation.By(func(value interface{}) error {
			_, err := logrus.ParseLevel(value.(string))
			return err
		})),
	)
}

// loadSpec reads MDCONVERT_* environment variables over the defaults.
func loadSpec() (specification, error) {
	var spec specification
	if err := envconfig.Process("mdconvert", &spec); err != nil {
		return spec, fmt.Errorf("error reading environment variables: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return spec, fmt.Errorf("invalid configuration: %w", err)
	}
	return spec, nil
}
