// Package sanitizer provides input filters for submitted form values.
//
// [StripTags] removes all markup and is the default filter applied by the
// form package. [SanitizeHTML] keeps a small set of formatting tags for rich
// text fields. The text filters ([Int], [Float], [Email], [Bool]) reduce a value
// to the characters its type allows; validation of the result is left to the
// caller.
//
//	name := sanitizer.StripTags(r.PostFormValue("category_name"))
//	mail := sanitizer.Email(r.PostFormValue("contact_email"))
package sanitizer
