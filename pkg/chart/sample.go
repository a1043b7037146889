package chart

// SampleCSV is a small dataset to try the tools with. Its header's second
// column starts with a digit, so automatic header detection reads the header
// as a data row; pass an explicit header strategy to skip it.
const SampleCSV = `Category,2022年,2023年
小于50w,14,15
50w-100w,12,13
100w-300w,27,25
300w-500w,12,12
500w-1000w,15,16
1000w-2000w,11,8
2000w以上,9,11`
