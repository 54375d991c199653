// Package huggingface publishes datasets to the Hugging Face hub.
//
// A push creates the dataset repository (an existing one is reused),
// encodes the dataset into a single train shard, renders a dataset card
// and commits both files to the main branch:
//
//  1. POST /api/repos/create
//  2. POST /api/datasets/{repo}/preupload/main
//  3. LFS batch, upload and verify for files the hub stores in LFS
//  4. POST /api/datasets/{repo}/commit/main (NDJSON)
//
// Requests to the hub carry HF_TOKEN as a bearer token. Uploads to the
// storage URLs returned by the LFS batch call do not.
package huggingface
