package server

import (
	"github.com/gofiber/fiber/v2"

	"pitchside/internal/middleware"
	"pitchside/internal/models"
	"pitchside/internal/pictures"
)

// Locals keys used by the picture pipeline to hand results to the next stage.
const (
	localPictureName = "pictureName"
	localPicturePath = "picturePath"
	localBackupURL   = "backupPicture"
)

// PictureResize is the first pipeline stage. It pulls the uploaded "picture"
// file from the multipart form, downscales it to the cover thumbnail size,
// re-encodes as WebP and writes the result under the configured upload
// directory. Requests without a picture pass through untouched.
func (s *Server) PictureResize() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("picture")
		if err != nil {
			// No upload on this request; nothing to process.
			return c.Next()
		}

		file, err := fileHeader.Open()
		if err != nil {
			middleware.PictureUploadFailures.WithLabelValues("resize").Inc()
			return models.NewImageProcessingError(err, "Couldn't compress the image")
		}
		defer file.Close()

		data, err := pictures.Resize(file)
		if err != nil {
			middleware.PictureUploadFailures.WithLabelValues("resize").Inc()
			return models.NewImageProcessingError(err, "Couldn't compress the image")
		}

		name := pictures.DerivedName(fileHeader.Filename)
		path, err := pictures.WriteAsset(s.config.UploadDir, name, data)
		if err != nil {
			middleware.PictureUploadFailures.WithLabelValues("resize").Inc()
			return models.NewImageProcessingError(err, "Couldn't compress the image")
		}

		c.Locals(localPictureName, name)
		c.Locals(localPicturePath, path)
		return c.Next()
	}
}

// PictureBackup is the second pipeline stage. It copies the processed
// thumbnail to remote object storage and records the public URL for the
// handler. On failure the local artifact from the first stage is removed so
// the request leaves nothing half-finished behind.
func (s *Server) PictureBackup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, _ := c.Locals(localPictureName).(string)
		if name == "" {
			return c.Next()
		}

		if s.storage == nil {
			// No remote storage configured; keep the local thumbnail only.
			return c.Next()
		}

		path, _ := c.Locals(localPicturePath).(string)

		data, err := pictures.ReadAsset(path)
		if err != nil {
			middleware.PictureUploadFailures.WithLabelValues("backup").Inc()
			pictures.RemoveAsset(path)
			return models.NewBadRequestError(err, "Error renaming the picture")
		}

		if err := s.storage.Upload(c.UserContext(), name, data, "image/webp"); err != nil {
			middleware.PictureUploadFailures.WithLabelValues("backup").Inc()
			pictures.RemoveAsset(path)
			return models.NewBadRequestError(err, "Error renaming the picture")
		}

		c.Locals(localBackupURL, s.storage.PublicURL(name))
		return c.Next()
	}
}

// pictureFromLocals returns the picture name and backup URL recorded by the
// pipeline, or empty strings when the request carried no upload.
func pictureFromLocals(c *fiber.Ctx) (picture, backup string) {
	picture, _ = c.Locals(localPictureName).(string)
	backup, _ = c.Locals(localBackupURL).(string)
	return picture, backup
}
