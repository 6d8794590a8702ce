package utils

import (
	"errors"
	"fmt"
	"io/fs"

	"smartplates/services/storage"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/spf13/viper"
)

// LoadCloudinaryConfig reads Cloudinary credentials into a dedicated Viper
// instance. Environment variables override the YAML file, and the file
// itself is optional so deployments can run on CLOUDINARY_* vars alone
// (see utils/cloudinary.example.yaml for the file layout).
func LoadCloudinaryConfig() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile("utils/cloudinary.yaml")
	v.SetConfigType("yaml")

	v.BindEnv("cloudinary.cloudName", "CLOUDINARY_CLOUD_NAME")
	v.BindEnv("cloudinary.apiKey", "CLOUDINARY_API_KEY")
	v.BindEnv("cloudinary.apiSecret", "CLOUDINARY_API_SECRET")

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading cloudinary config file: %w", err)
	}
	return v, nil
}

// Cloudinary initializes and returns a Cloudinary-based StorageService using Viper.
func Cloudinary() (storage.StorageService, error) {
	v, err := LoadCloudinaryConfig()
	if err != nil {
		return nil, err
	}

	cloudName := v.GetString("cloudinary.cloudName")
	apiKey := v.GetString("cloudinary.apiKey")
	apiSecret := v.GetString("cloudinary.apiSecret")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set: provide utils/cloudinary.yaml or the CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET environment variables")
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("utils.Cloudinary: failed to initialize Cloudinary: %w", err)
	}

	// Create the storage service using our Cloudinary client and cloud name.
	storageSvc := storage.NewStorageService(cld, cloudName, apiSecret)
	return storageSvc, nil
}
