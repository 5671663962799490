package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/certportal/verification/client"
	"github.com/certportal/verification/dto"
)

// fakeExtractor serves scripted OCR results keyed by "mode:path" and counts
// every call so tests can assert what was (not) extracted.
type fakeExtractor struct {
	responses map[string]string
	errs      map[string]error
	calls     int
}

func (f *fakeExtractor) Extract(_ context.Context, filePath string, mode client.Mode) (string, error) {
	f.calls++
	key := string(mode) + ":" + filePath
	if err, ok := f.errs[key]; ok {
		return "", err
	}
	if text, ok := f.responses[key]; ok {
		return text, nil
	}
	return "", &client.OCRError{Path: filePath, Mode: mode, Err: fmt.Errorf("no scripted response")}
}

type fakeAppStore struct {
	apps       map[string]*dto.Application
	savedID    string
	savedSaves int
	lastReason string
}

func (f *fakeAppStore) GetByID(_ context.Context, id string) (*dto.Application, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, dto.ErrApplicationNotFound
	}
	return app, nil
}

func (f *fakeAppStore) SaveVerification(_ context.Context, id, rejectionReason string, _ map[string]string) error {
	f.savedID = id
	f.savedSaves++
	f.lastReason = rejectionReason
	return nil
}

type fakeRuleStore struct {
	rules map[string]*dto.DocumentRule
}

func (f *fakeRuleStore) GetRule(_ context.Context, documentType string) (*dto.DocumentRule, error) {
	rule, ok := f.rules[documentType]
	if !ok {
		return nil, dto.ErrRuleNotFound
	}
	return rule, nil
}

type fakeResolver struct {
	citizen *dto.Citizen
	err     error
}

func (f *fakeResolver) Resolve(_ context.Context, _ *dto.Application) (*dto.Citizen, error) {
	return f.citizen, f.err
}

type fakeCitizenStore struct {
	byAadhaar map[string]*dto.Citizen
	byName    map[string]*dto.Citizen

	aadhaarLookups int
	nameLookups    int
}

func (f *fakeCitizenStore) FindByAadhaar(_ context.Context, aadhaar string) (*dto.Citizen, error) {
	f.aadhaarLookups++
	return f.byAadhaar[aadhaar], nil
}

func (f *fakeCitizenStore) FindByNameAndDOB(_ context.Context, firstName, lastName, dob string) (*dto.Citizen, error) {
	f.nameLookups++
	return f.byName[firstName+"|"+lastName+"|"+dob], nil
}

type fakeCache struct {
	store map[string]string
	hits  int
	sets  int
}

func (f *fakeCache) Get(_ context.Context, key string) (string, bool) {
	text, ok := f.store[key]
	if ok {
		f.hits++
	}
	return text, ok
}

func (f *fakeCache) Set(_ context.Context, key, value string) {
	if f.store == nil {
		f.store = make(map[string]string)
	}
	f.store[key] = value
	f.sets++
}

type fakeCrossChecker struct {
	narrative string
	err       error
	calls     int
}

func (f *fakeCrossChecker) Narrative(_ context.Context, _ *dto.Application, _ *dto.Citizen, _, _ string) (string, error) {
	f.calls++
	return f.narrative, f.err
}

// fakeOCRClient implements client.OCRClient for gateway tests.
type fakeOCRClient struct {
	text  string
	err   error
	calls int
}

func (f *fakeOCRClient) ExtractText(_ context.Context, _ string, _ client.Mode) (string, error) {
	f.calls++
	return f.text, f.err
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
