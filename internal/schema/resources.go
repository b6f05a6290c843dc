package schema

func init() {
	registerCapture()
	registerUploadResult()
	registerDeleteResult()
	registerOembed()
	registerUser()
}

func registerCapture() {
	Register("capture", Object(
		"A Gyazo capture (screenshot, animation, or video) with its metadata",
		map[string]*Schema{
			"image_id":      String("Unique capture identifier (hex string)"),
			"permalink_url": String("Capture page URL on gyazo.com (null for private captures)"),
			"thumb_url":     String("Thumbnail image URL (null when unavailable)"),
			"type":          Enum("Content file type", "png", "jpg", "gif", "mp4"),
			"created_at":    String("Capture timestamp (ISO 8601 string)"),
			"metadata": Object("Optional capture annotations; every field may be null",
				map[string]*Schema{
					"app":   String("Application the capture was taken from"),
					"title": String("Capture title (often the window title)"),
					"url":   String("Page URL the capture was taken on"),
					"desc":  String("Free-form description"),
				}),
			"ocr": Object("Recognized text, present once OCR processing finishes",
				map[string]*Schema{
					"locale":      String("Detected text locale"),
					"description": String("Recognized text content"),
				}),
		},
		"image_id", "type", "created_at",
	))
}

func registerUploadResult() {
	Register("upload_result", Object(
		"The record returned after uploading a capture",
		map[string]*Schema{
			"image_id":      String("Unique capture identifier assigned by the server"),
			"permalink_url": String("Capture page URL on gyazo.com"),
			"thumb_url":     String("Thumbnail image URL"),
			"url":           String("Direct content URL on i.gyazo.com"),
			"type":          Enum("Content file type", "png", "jpg", "gif", "mp4"),
		},
		"image_id", "permalink_url",
	))
}

func registerDeleteResult() {
	Register("delete_result", Object(
		"The echo record returned after deleting a capture",
		map[string]*Schema{
			"image_id": String("Identifier of the deleted capture"),
			"type":     String("File type of the deleted capture"),
		},
		"image_id",
	))
}

func registerOembed() {
	Register("oembed", Object(
		"Embed metadata for a capture page, in the oEmbed photo shape",
		map[string]*Schema{
			"version":       String("oEmbed protocol version"),
			"type":          Enum("oEmbed resource type", "photo", "video"),
			"provider_name": String("Embed provider name (Gyazo)"),
			"provider_url":  String("Embed provider site URL"),
			"url":           String("Direct content URL for embedding"),
			"width":         Int("Content width in pixels"),
			"height":        Int("Content height in pixels"),
		},
		"type", "url", "width", "height",
	))
}

func registerUser() {
	Register("user", Object(
		"The authenticated Gyazo account profile",
		map[string]*Schema{
			"email":         String("Account email address"),
			"name":          String("Account display name"),
			"uid":           String("Stable account identifier"),
			"profile_image": String("Avatar image URL"),
		},
		"uid",
	))
}
