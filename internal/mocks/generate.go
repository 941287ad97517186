package mocks

//go:generate mockery --name ReportStore --srcpkg github.com/aevon-lab/barad-dur/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name RollupStore --srcpkg github.com/aevon-lab/barad-dur/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name Recomputer --srcpkg github.com/aevon-lab/barad-dur/internal/projection --output ./projection --outpkg projectionmocks --with-expecter
