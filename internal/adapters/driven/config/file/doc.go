// Package file reads run settings from a TOML file.
//
// Example docs-dataset.toml:
//
//	dataset_name = "alice/project-docs"
//	docs_folder = "docs"
//	private = true
//
//	[chunking]
//	strategy = "by_title"
//	max_characters = 800
//
//	[hub]
//	endpoint = "https://huggingface.co"
package file
