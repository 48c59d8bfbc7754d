package handlers

type messageKey string

const (
	msgWordLimit        messageKey = "word_limit"
	msgUploadTooLarge   messageKey = "upload_too_large"
	msgUnsupportedMedia messageKey = "unsupported_media"
	msgGateClosed       messageKey = "gate_closed"
)

var messages = map[string]map[messageKey]string{
	"en": {
		msgWordLimit:        "too many words for this engraving",
		msgUploadTooLarge:   "the image is too large",
		msgUnsupportedMedia: "only JPEG, PNG and WebP images are accepted",
		msgGateClosed:       "please finish all customizations before adding to cart",
	},
	"es": {
		msgWordLimit:        "demasiadas palabras para este grabado",
		msgUploadTooLarge:   "la imagen es demasiado grande",
		msgUnsupportedMedia: "solo se aceptan imágenes JPEG, PNG y WebP",
		msgGateClosed:       "completa todas las personalizaciones antes de añadir al carrito",
	},
}

func localize(locale string, key messageKey) string {
	if byLocale, ok := messages[locale]; ok {
		if msg, ok := byLocale[key]; ok {
			return msg
		}
	}
	return messages["en"][key]
}
